package github

// Repo holds the repository metadata the resolution pipeline needs
type Repo struct {
	Name     string
	FullName string
	Private  bool
}

// Collaborator represents a repository collaborator with its admin flag,
// derived from the raw permission record
type Collaborator struct {
	Login string
	Admin bool
}

// Team represents a team granted access to a repository
type Team struct {
	Slug       string
	Name       string
	Permission string
}
