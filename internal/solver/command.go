package solver

import "fmt"

// buildCommand returns the command line the fixed-command task asks for.
func buildCommand(targetURL, email string) string {
	return fmt.Sprintf(`uv http get %s?email=%s -H "Accept: application/json"`, targetURL, email)
}
