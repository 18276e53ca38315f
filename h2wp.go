// Package h2wp imports trees of static HTML documents into a WordPress-style
// content store. It extracts titles and body content, mirrors local images
// and documents into the media library, rewrites references to point at the
// imported copies, and advances resumable batch jobs one bounded step at a
// time.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, wxr/).
package h2wp
