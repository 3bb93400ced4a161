package policy

// Permission tokens a plugin may declare in manifest.json
const (
	PermissionReadTasks     = "read:tasks"
	PermissionWriteTasks    = "write:tasks"
	PermissionReadGoals     = "read:goals"
	PermissionWriteGoals    = "write:goals"
	PermissionReadHabits    = "read:habits"
	PermissionWriteHabits   = "write:habits"
	PermissionReadJournal   = "read:journal"
	PermissionWriteJournal  = "write:journal"
	PermissionReadCalendar  = "read:calendar"
	PermissionWriteCalendar = "write:calendar"
	PermissionReadSettings  = "read:settings"
	PermissionNotifications = "notifications"
	PermissionCommands      = "commands"
	PermissionStorage       = "storage"
	PermissionUISidebar     = "ui:sidebar"
	PermissionUICustomize   = "ui:customize"
	PermissionNetwork       = "network"
	PermissionFilesystem    = "filesystem"
	PermissionTheme         = "theme"
)

// MaxPermissionsBeforeReview is the declared-permission count above which reviewers are nudged
const MaxPermissionsBeforeReview = 5

// ValidPermissions is the complete permission vocabulary
var ValidPermissions = map[string]bool{
	PermissionReadTasks:     true,
	PermissionWriteTasks:    true,
	PermissionReadGoals:     true,
	PermissionWriteGoals:    true,
	PermissionReadHabits:    true,
	PermissionWriteHabits:   true,
	PermissionReadJournal:   true,
	PermissionWriteJournal:  true,
	PermissionReadCalendar:  true,
	PermissionWriteCalendar: true,
	PermissionReadSettings:  true,
	PermissionNotifications: true,
	PermissionCommands:      true,
	PermissionStorage:       true,
	PermissionUISidebar:     true,
	PermissionUICustomize:   true,
	PermissionNetwork:       true,
	PermissionFilesystem:    true,
	PermissionTheme:         true,
}

// DangerousPermissions need a justification from the author: every write scope,
// network and filesystem access, theming and UI customization.
var DangerousPermissions = map[string]bool{
	PermissionWriteTasks:    true,
	PermissionWriteGoals:    true,
	PermissionWriteHabits:   true,
	PermissionWriteJournal:  true,
	PermissionWriteCalendar: true,
	PermissionNetwork:       true,
	PermissionFilesystem:    true,
	PermissionTheme:         true,
	PermissionUICustomize:   true,
}

// IsValidPermission reports whether perm is part of the vocabulary
func IsValidPermission(perm string) bool {
	return ValidPermissions[perm]
}

// IsDangerousPermission reports whether perm requires justification
func IsDangerousPermission(perm string) bool {
	return DangerousPermissions[perm]
}

// InvalidPermissions returns unknown tokens in declaration order, each once
func InvalidPermissions(perms []string) []string {
	return filterUnique(perms, func(p string) bool { return !IsValidPermission(p) })
}

// Dangerous returns dangerous tokens in declaration order, each once
func Dangerous(perms []string) []string {
	return filterUnique(perms, IsDangerousPermission)
}

func filterUnique(perms []string, keep func(string) bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range perms {
		if seen[p] || !keep(p) {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
