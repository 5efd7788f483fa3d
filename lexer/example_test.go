package lexer_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/glex/lexer"
)

func Example() {
	l := lexer.New()

	_ = l.Add(lexer.Argument{
		ID:        "nodes",
		Long:      "list",
		Short:     'l',
		Arity:     lexer.ArityMulti,
		Delimiter: ',',
	})
	_ = l.Add(lexer.Argument{ID: "start", Long: "start", Short: 's'})

	tokens, err := l.Tokenize(context.Background(), []string{"-sl1,2", "--", "-v"}, 0)
	if err != nil {
		fmt.Println(err)

		return
	}

	_ = tokens.Format(os.Stdout)

	// Output:
	// start
	// nodes "1" "2"
	// - "-v"
}

func ExampleLexer_Tokenize_error() {
	reg, _ := lexer.NewRegistry(
		lexer.Argument{ID: "nodes", Long: "list", Arity: lexer.AritySingle},
	)
	l := lexer.New(lexer.WithRegistry(reg))

	_, err := l.Tokenize(context.Background(), []string{"--lst", "1"}, 0)

	fmt.Println(errors.Is(err, lexer.ErrUnknownLongFlag))
	fmt.Println(err)

	// Output:
	// true
	// long-arg handling failed: unknown long flag: the long flag "lst" is not registered (did you mean --list?)
}
