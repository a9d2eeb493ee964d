package common

// PackageName is the default log service tag.
const PackageName = "paper-custody-kit"

// Version is overridden at build time with -ldflags "-X .../common.Version=...".
var Version = "dev"
