// Package directive emits link instructions to the enclosing build system.
//
// Directives use a line-oriented key/value protocol, one instruction per
// line, prefixed so the build system can tell them apart from other output:
//
//	bridge:rerun-if-changed=foreign/mod.src
//	bridge:link-search=/build/out
//	bridge:link-lib=static=mod
//	bridge:link-framework=CoreFoundation
//
// The framework and system-library directives are platform-conditional,
// driven by a lookup table keyed on the target operating system.
package directive
