package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectNameLength = 255

	// MaxFileNameLength is the maximum length for file and folder names.
	MaxFileNameLength = 255

	// MaxDescriptionLength caps project descriptions
	MaxDescriptionLength = 2000

	// MaxUserRefLength is the maximum length of an identity reference in URLs
	MaxUserRefLength = 255

	// MaxSlugAttempts bounds unique slug generation
	MaxSlugAttempts = 10
)
