package htmlcase_test

import (
	"fmt"
	"strings"

	"github.com/mrjoshuak/htmlcase"
)

func ExampleTransform() {
	res, err := htmlcase.Transform(`<p>Text with <strong>bold</strong></p><span>aside</span>`, htmlcase.Uppercase)
	if err != nil {
		fmt.Printf("Error transforming: %v\n", err)
		return
	}

	fmt.Println(res.HTML)
	// Output: <p>TEXT WITH <strong>BOLD</strong></p><span>aside</span>
}

func ExampleNew() {
	// Create a transformer that targets list items instead of paragraphs
	t := htmlcase.New(
		htmlcase.WithSelector("li"),
	)

	res, err := t.Transform(`<p>Intro</p><ul><li>ONE</li><li>Two</li></ul>`, htmlcase.Lowercase)
	if err != nil {
		fmt.Printf("Error transforming: %v\n", err)
		return
	}

	fmt.Println(res.HTML)
	fmt.Printf("Targets: %d\n", res.Targets)
	// Output:
	// <p>Intro</p><ul><li>one</li><li>two</li></ul>
	// Targets: 2
}

func ExampleTransformer_TransformFromReader() {
	t := htmlcase.New(htmlcase.WithMaxInputSize(1024))

	res, err := t.TransformFromReader(strings.NewReader(`<p>straße</p>`), htmlcase.Uppercase)
	if err != nil {
		fmt.Printf("Error transforming: %v\n", err)
		return
	}

	fmt.Println(res.HTML)
	// Output: <p>STRASSE</p>
}

func ExampleIsEmptyInput() {
	_, err := htmlcase.Transform("", htmlcase.Uppercase)
	fmt.Println(htmlcase.IsEmptyInput(err))
	// Output: true
}
