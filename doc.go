/*
Package htmlcase rewrites the letter case of text inside HTML paragraphs.

An input fragment is parsed the way a browser would parse it, every <p>
element is located, and each text node beneath those elements is mapped to
upper or lower case. Markup, attributes and all text outside paragraphs are
left alone, and the body of the parsed document is serialized back to HTML.

Basic Usage:

    import "github.com/mrjoshuak/htmlcase"

    res, err := htmlcase.Transform(`<p>Hello <b>world</b></p>`, htmlcase.Uppercase)
    if err != nil {
        // Handle error
    }
    fmt.Println(res.HTML) // <p>HELLO <b>WORLD</b></p>

Advanced Usage with Options:

    t := htmlcase.New(
        htmlcase.WithSelector("article p, blockquote"),
        htmlcase.WithNormalization(htmlcase.NormalizeNFC),
        htmlcase.WithMaxInputSize(4<<20),
    )

    // Transform from a reader (like a file or HTTP request body)
    res, err := t.TransformFromReader(reader, htmlcase.Lowercase)

Case mapping is full Unicode mapping without locale tailoring, so "ß"
uppercases to "SS" and a word-final capital sigma lowercases to "ς".

Errors carry a Kind that can be tested with IsEmptyInput, IsParseError,
IsBodyNotFound and IsSerializationError, or with errors.Is against the
exported sentinels.
*/
package htmlcase
