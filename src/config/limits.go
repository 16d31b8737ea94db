package config

// Content limits. These match the limits the board has always enforced, so
// changing them requires a migration for existing content.
const (
	NameMin     = 4
	NameMax     = 80
	DescMin     = 4
	DescMax     = 80
	TextMin     = 4
	TextMax     = 4096
	UsernameMin = 4
	UsernameMax = 25
	EmailMin    = 6
	EmailMax    = 35
)

// The maximum number of items a single API listing request may ask for.
const ResourceLimit = 25
