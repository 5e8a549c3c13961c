// Package gura parses and serializes the Gura configuration language
// (https://gura.netlify.app, format version 1.0.0): an indentation-based
// format with nested objects, variables, imports and typed scalars.
//
//	doc, err := gura.Parse(`
//	title: "Gura Example"
//	ports: [80, 443]
//	`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Get("title").Str)
//	fmt.Println(gura.Dump(doc))
package gura
