// Package buildinfo holds version metadata stamped in at link time via
// -ldflags, and the startup banner that prints it.
package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/ntfsidx/ntfsidx/internal/buildinfo.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// PrintLogo prints the startup banner and build metadata.
func PrintLogo() {
	fmt.Println("           _   __      _     _")
	fmt.Println("  _ __  | |_ / _| ___(_) __| |_  __")
	fmt.Println(" | '_ \\ | __| |_ / __| |/ _` \\ \\/ /")
	fmt.Println(" | | | | |_|  _|\\__ \\ | (_| |>  <")
	fmt.Println(" |_| |_|\\__|_|  |___/_|\\__,_/_/\\_\\")
	fmt.Println()
	fmt.Println("NTFS Master File Table indexer")
	fmt.Println()
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Commit:     %s\n", CommitHash)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Println()
}
