package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"business-heatmap/models"
	"business-heatmap/services"
	"business-heatmap/utils"
)

// ErrAborted is returned when the user declines to continue or input ends.
var ErrAborted = errors.New("prompt: aborted by user")

// Prompter collects a location and a category alias from a terminal.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	categories  services.CategoryAutocompleter
	maxSearches int
}

// New creates a Prompter. maxSearches bounds how many autocomplete searches
// a single category choice may take.
func New(in io.Reader, out io.Writer, categories services.CategoryAutocompleter, maxSearches int) *Prompter {
	if maxSearches < 1 {
		maxSearches = 1
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		categories:  categories,
		maxSearches: maxSearches,
	}
}

// NextQuery asks for a location and then a category.
func (p *Prompter) NextQuery(ctx context.Context) (models.SearchQuery, error) {
	location, err := p.Location()
	if err != nil {
		return models.SearchQuery{}, err
	}
	category, err := p.Category(ctx)
	if err != nil {
		return models.SearchQuery{}, err
	}
	return models.SearchQuery{Location: location, Category: category}, nil
}

// Location asks until a non-empty location is entered.
func (p *Prompter) Location() (string, error) {
	for {
		line, err := p.ask("Choose a location to search in and around!\n" +
			"You may enter various locations, separated by \"or\" (ie: Vancouver or Richmond, BC or Burnaby)\n>")
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, "A location is required. Try again.")
	}
}

// Category runs the autocomplete menu and returns the chosen alias.
func (p *Prompter) Category(ctx context.Context) (string, error) {
	for search := 1; search <= p.maxSearches; search++ {
		text, err := p.ask("\nSearch for a category that you would like to locate on the map.\n>")
		if err != nil {
			return "", err
		}
		if text == "" {
			continue
		}

		suggestions, err := p.categories.Autocomplete(ctx, text)
		if err != nil {
			return "", fmt.Errorf("prompt: autocomplete %q: %w", text, err)
		}
		options := uniqueAliases(suggestions)

		if len(options) == 0 {
			again, err := p.confirm("\nNo results. Would you like to search again? ([yes]/no)\n>", true)
			if err != nil {
				return "", err
			}
			if !again {
				return "", ErrAborted
			}
			continue
		}

		alias, err := p.choose(options)
		if err != nil {
			return "", err
		}
		if alias != "" {
			return alias, nil
		}
	}
	return "", fmt.Errorf("prompt: no category chosen after %d searches: %w", p.maxSearches, ErrAborted)
}

// choose shows the numbered menu. An empty alias means search again.
func (p *Prompter) choose(options []models.Category) (string, error) {
	fmt.Fprintln(p.out, "\nThe result(s) from the search is/are:")
	for i, c := range options {
		fmt.Fprintf(p.out, "(%d) %s\t\n", i, c.Title)
	}

	for {
		line, err := p.ask("\nPlease enter the corresponding number for your desired category or type \"no\" to search again\n>")
		if err != nil {
			return "", err
		}
		if strings.EqualFold(line, "no") {
			return "", nil
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "You did not input a number value. Please try again.")
			continue
		}
		if n < 0 || n >= len(options) {
			fmt.Fprintln(p.out, "Number out of range. Please try again.")
			continue
		}
		return options[n].Alias, nil
	}
}

func (p *Prompter) confirm(question string, def bool) (bool, error) {
	for {
		line, err := p.ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Your response is invalid. Try again.")
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", ErrAborted
	default:
		return "", fmt.Errorf("prompt: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func uniqueAliases(in []models.Category) []models.Category {
	seen := utils.NewStringSet()
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		if c.Alias == "" || !seen.Add(c.Alias) {
			continue
		}
		if c.Title == "" {
			c.Title = c.Alias
		}
		out = append(out, c)
	}
	return out
}
