package internal

// Version is the langsync release, set at build time with
// -ldflags "-X codeberg.org/snonux/langsync/internal.Version=..."
var Version = "v0.1.0"
