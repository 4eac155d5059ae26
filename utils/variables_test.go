package utils

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestValidName(t *testing.T) {
	test.That(t, ValidNameRegex.MatchString("minitech-mill_2"), test.ShouldBeTrue)
	test.That(t, ValidNameRegex.MatchString("-mill"), test.ShouldBeFalse)
	test.That(t, ValidNameRegex.MatchString("mill one"), test.ShouldBeFalse)

	err := ErrInvalidName(strings.Repeat("a", 61))
	test.That(t, err.Error(), test.ShouldContainSubstring, "60 characters or fewer")
	err = ErrInvalidName("-mill")
	test.That(t, err.Error(), test.ShouldContainSubstring, "must start with a letter or number")
}
