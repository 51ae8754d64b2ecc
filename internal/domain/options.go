package domain

// CommonOptions contains shared options for the CLI and orchestration.
type CommonOptions struct {
	Verbose      bool
	NoCache      bool
	ShowProgress bool
	StrictTypes  bool
	Workers      int
}
