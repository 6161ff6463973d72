package cmd

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/wemanga/wemanga/catalog"
	"golang.org/x/term"
)

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resolveTitle is findTitle, asking the user to pick when the query is ambiguous.
func resolveTitle(c *catalog.Catalog, query string) (*catalog.Title, error) {
	title, err := findTitle(c, query)

	var ambiguous *ambiguousError
	if !errors.As(err, &ambiguous) || !interactive() {
		return title, err
	}

	var index int
	err = survey.AskOne(&survey.Select{
		Message: "Several titles match " + query,
		Options: ambiguous.names(),
	}, &index)
	if err != nil {
		return nil, err
	}

	return ambiguous.titles[index], nil
}

// confirm asks a yes/no question. Non interactive sessions answer no.
func confirm(message string) (bool, error) {
	if !interactive() {
		return false, nil
	}

	var response bool
	err := survey.AskOne(&survey.Confirm{Message: message}, &response)
	return response, err
}
