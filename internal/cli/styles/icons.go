package styles

// Nerd Font icons used in CLI output.
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconHeart     = "" // heart
	IconGo        = "" // go gopher
	IconLock      = "" // lock
	IconCheck     = "" // check
	IconX         = "" // x
	IconWarning   = "" // warning
	IconInfo      = "" // info
	IconTrash     = "" // trash
	IconDatabase  = "" // database
)
