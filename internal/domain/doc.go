// Package domain contains the core model for meshviz: robot descriptions,
// collision meshes and the line-strip markers derived from them.
//
// The domain is middleware- and format-agnostic: it does not depend on XML
// parsing, mesh file codecs or the ROS transport. Infra adapters map into and
// from these types.
package domain
