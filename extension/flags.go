// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos between
// Flags().Type() definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "no-verify" -> FlagNoVerify).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagDryRun           = "dry-run"           // Preview without making changes
	FlagEncrypt          = "encrypt"           // Encrypt content with a password
	FlagForce            = "force"             // Overwrite existing files
	FlagLocal            = "local"             // Use local scope
	FlagLong             = "long"              // Long format output
	FlagNoVerify         = "no-verify"         // Skip checksum verification
	FlagNumber           = "number"            // Number output lines
	FlagRaw              = "raw"               // Raw output without rendering
	FlagPasswordRequired = "password-required" // Mark share as password protected
	FlagIDs              = "ids"               // Output ids only
	FlagDiff             = "diff"              // Show diff before writing

	// String flags

	FlagFile  = "file"  // Read content from a file
	FlagLines = "lines" // Line range (e.g., "10:20")
	FlagSort  = "sort"  // Sort order
	FlagTag   = "tag"   // Tag filter/value
	FlagTitle = "title" // Document title
)
