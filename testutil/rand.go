package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// ContainerName returns prefix with a random lowercase suffix, so a test run
// does not collide with a container left over from an earlier one.
func ContainerName(prefix string) string {
	return prefix + "-" + strings.ToLower(gofakeit.LetterN(6))
}
