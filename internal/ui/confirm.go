package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

func ConfirmYesNo(question string) bool {
	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s [Y/n]: ", pterm.Bold.Sprint(question))
		if !s.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(s.Text())) {
		case "", "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
