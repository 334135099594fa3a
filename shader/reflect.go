package shader

import (
	"fmt"
	"regexp"
	"strings"
)

type Qualifier int

const (
	In Qualifier = iota
	Out
	Uniform
)

func (q Qualifier) String() string {
	switch q {
	case In:
		return "in"
	case Out:
		return "out"
	case Uniform:
		return "uniform"
	}
	return fmt.Sprintf("Qualifier(%d)", int(q))
}

// Variable is a global in, out or uniform declaration.
type Variable struct {
	Qualifier Qualifier
	Type      string
	Name      string
}

// Interface lists the global declarations of one stage, in source order.
type Interface struct {
	Inputs   []Variable
	Outputs  []Variable
	Uniforms []Variable
}

func lookup(vars []Variable, name string) (Variable, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

func (i Interface) Input(name string) (Variable, bool)   { return lookup(i.Inputs, name) }
func (i Interface) Output(name string) (Variable, bool)  { return lookup(i.Outputs, name) }
func (i Interface) Uniform(name string) (Variable, bool) { return lookup(i.Uniforms, name) }

var (
	lineComment   = regexp.MustCompile(`//[^\n]*`)
	blockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	layoutPrefix  = regexp.MustCompile(`^layout\s*\([^)]*\)\s*`)
	arraySuffix   = regexp.MustCompile(`\s*\[[^\]]*\]$`)
	skippedTokens = map[string]bool{
		"flat": true, "smooth": true, "noperspective": true, "centroid": true,
		"invariant": true, "highp": true, "mediump": true, "lowp": true,
	}
)

// Reflect scans the global declarations of a GLSL source. It understands
// layout-qualified declarations and comma-separated declarators, and
// ignores everything inside function bodies.
func Reflect(source string) Interface {
	src := blockComment.ReplaceAllString(source, "")
	src = lineComment.ReplaceAllString(src, "")

	var lines []string
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	src = strings.Join(lines, "\n")

	var iface Interface
	var stmt strings.Builder
	depth := 0
	for _, r := range src {
		switch r {
		case '{':
			depth++
			stmt.Reset()
		case '}':
			depth--
			stmt.Reset()
		case ';':
			if depth == 0 {
				iface.add(stmt.String())
			}
			stmt.Reset()
		default:
			if depth == 0 {
				stmt.WriteRune(r)
			}
		}
	}
	return iface
}

func (i *Interface) add(stmt string) {
	stmt = layoutPrefix.ReplaceAllString(strings.TrimSpace(stmt), "")
	var fields []string
	for _, f := range strings.Fields(stmt) {
		if !skippedTokens[f] {
			fields = append(fields, f)
		}
	}
	if len(fields) < 3 {
		return
	}

	var q Qualifier
	switch fields[0] {
	case "in":
		q = In
	case "out":
		q = Out
	case "uniform":
		q = Uniform
	default:
		return
	}

	// "out vec3 a, b[2];" declares a and b.
	for _, name := range strings.Split(strings.Join(fields[2:], " "), ",") {
		name = arraySuffix.ReplaceAllString(strings.TrimSpace(name), "")
		if name == "" {
			continue
		}
		v := Variable{Qualifier: q, Type: fields[1], Name: name}
		switch q {
		case In:
			i.Inputs = append(i.Inputs, v)
		case Out:
			i.Outputs = append(i.Outputs, v)
		case Uniform:
			i.Uniforms = append(i.Uniforms, v)
		}
	}
}

// CheckInterfaces reports the first fragment input without a vertex output
// of the same name and type. The message is phrased like a driver link log.
func CheckInterfaces(vertex, fragment Interface) error {
	for _, in := range fragment.Inputs {
		out, ok := vertex.Output(in.Name)
		if !ok {
			return fmt.Errorf("fragment shader input '%s' is not written by the vertex shader", in.Name)
		}
		if out.Type != in.Type {
			return fmt.Errorf("type mismatch for '%s': vertex shader writes %s, fragment shader reads %s", in.Name, out.Type, in.Type)
		}
	}
	return nil
}
