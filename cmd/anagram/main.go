package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"crosswarped.com/anagram"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var illegal *anagram.IllegalCharacterError
		if errors.As(err, &illegal) {
			fmt.Fprintln(os.Stderr, illegal.Error())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
