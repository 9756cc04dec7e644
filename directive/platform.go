package directive

// systemDeps lists link-time dependencies the foreign runtime embedded in
// the archive drags in on specific target platforms, independent of the
// exported API surface. Adding a platform is a data change, not new logic.
type systemDeps struct {
	Frameworks []string
	Libs       []string
}

var platformDeps = map[string]systemDeps{
	"darwin": {
		Frameworks: []string{"CoreFoundation", "Security"},
	},
	"windows": {
		Libs: []string{"winmm", "ntdll", "ws2_32"},
	},
	"linux": {
		Libs: []string{"pthread", "dl"},
	},
}

// SystemDeps returns the extra link requirements for a target platform.
// Platforms not in the table need nothing; emitting their directives
// unconditionally would be a linker error on every other platform.
func SystemDeps(targetOS string) (frameworks, libs []string) {
	deps := platformDeps[targetOS]
	return deps.Frameworks, deps.Libs
}
