package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gura-conf/gura/pkgs/parser"
	"github.com/gura-conf/gura/pkgs/value"
)

func newConvertCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a Gura file to JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parser.ParseFile(args[0])
			if err != nil {
				return &exitError{code: exitParse, err: err}
			}
			var out []byte
			switch format {
			case "json":
				out, err = toJSON(doc)
			case "yaml":
				out, err = yaml.Marshal(toYAMLNode(doc))
			default:
				return fmt.Errorf("unsupported format %q, use 'json' or 'yaml'", format)
			}
			if err != nil {
				return &exitError{code: exitIOError, err: err}
			}
			cmd.OutOrStdout().Write(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "to", "json", "Target format: json or yaml")
	return cmd
}

// toJSON renders a value tree as indented JSON, preserving object key order.
// Non-finite floats have no JSON form and are emitted as strings.
func toJSON(v *value.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, ""); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *value.Value, prefix string) error {
	switch v.Type {
	case value.NullType:
		buf.WriteString("null")
	case value.BoolType:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case value.IntType:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case value.FloatType:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return writeJSONString(buf, floatKeyword(v.Float))
		}
		buf.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case value.StringType:
		return writeJSONString(buf, v.Str)
	case value.ArrayType:
		if len(v.Items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[")
		inner := prefix + "  "
		for i, it := range v.Items {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n" + inner)
			if err := writeJSON(buf, it, inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + prefix + "]")
	case value.ObjectType:
		if v.Obj.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{")
		inner := prefix + "  "
		for i := 0; i < v.Obj.Len(); i++ {
			k, item := v.Obj.At(i)
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n" + inner)
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSON(buf, item, inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + prefix + "}")
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func floatKeyword(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return "nan"
}

// toYAMLNode builds a yaml.Node tree so that object key order survives the
// conversion; plain map marshalling would sort the keys.
func toYAMLNode(v *value.Value) *yaml.Node {
	switch v.Type {
	case value.NullType:
		return scalarNode("!!null", "null")
	case value.BoolType:
		return scalarNode("!!bool", strconv.FormatBool(v.Bool))
	case value.IntType:
		return scalarNode("!!int", strconv.FormatInt(v.Int, 10))
	case value.FloatType:
		return scalarNode("!!float", yamlFloat(v.Float))
	case value.StringType:
		return scalarNode("!!str", v.Str)
	case value.ArrayType:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range v.Items {
			node.Content = append(node.Content, toYAMLNode(it))
		}
		return node
	case value.ObjectType:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i := 0; i < v.Obj.Len(); i++ {
			k, item := v.Obj.At(i)
			node.Content = append(node.Content, scalarNode("!!str", k), toYAMLNode(item))
		}
		return node
	}
	return scalarNode("!!null", "null")
}

func scalarNode(tag, val string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
