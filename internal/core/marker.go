package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// EvaluateMarker evaluates a PEP 508 environment marker against the given
// environment snapshot. The supported grammar is the subset found in wheel
// metadata: comparisons of environment attributes against quoted literals,
// combined with "and"/"or" and parenthesized grouping. An empty expression
// is trivially true. A malformed expression is an error, never a silent
// false.
func EvaluateMarker(expression string, env map[string]string) (bool, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return true, nil
	}
	tokens, err := tokenizeMarker(expression)
	if err != nil {
		return false, err
	}
	parser := markerParser{tokens: tokens, env: env, expression: expression}
	result, err := parser.parseOr()
	if err != nil {
		return false, err
	}
	if parser.pos != len(parser.tokens) {
		return false, malformedMarker(expression, "trailing tokens after expression")
	}
	return result, nil
}

type markerTokenKind int

const (
	tokenIdent markerTokenKind = iota
	tokenString
	tokenOperator
	tokenLParen
	tokenRParen
)

type markerToken struct {
	kind  markerTokenKind
	value string
}

func tokenizeMarker(expression string) ([]markerToken, error) {
	var tokens []markerToken
	i := 0
	for i < len(expression) {
		c := expression[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, markerToken{kind: tokenLParen})
			i++
		case c == ')':
			tokens = append(tokens, markerToken{kind: tokenRParen})
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(expression[i+1:], c)
			if end < 0 {
				return nil, malformedMarker(expression, "unterminated string literal")
			}
			tokens = append(tokens, markerToken{kind: tokenString, value: expression[i+1 : i+1+end]})
			i += end + 2
		case c == '=' || c == '!' || c == '<' || c == '>' || c == '~':
			op := string(c)
			if i+1 < len(expression) && expression[i+1] == '=' {
				op += "="
				i++
			}
			if op == "=" || op == "!" || op == "~" {
				return nil, malformedMarker(expression, fmt.Sprintf("invalid operator %q", op))
			}
			tokens = append(tokens, markerToken{kind: tokenOperator, value: op})
			i++
		case isIdentByte(c):
			start := i
			for i < len(expression) && isIdentByte(expression[i]) {
				i++
			}
			tokens = append(tokens, markerToken{kind: tokenIdent, value: expression[start:i]})
		default:
			return nil, malformedMarker(expression, fmt.Sprintf("unexpected character %q", c))
		}
	}
	return tokens, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

type markerParser struct {
	tokens     []markerToken
	pos        int
	env        map[string]string
	expression string
}

func (p *markerParser) parseOr() (bool, error) {
	result, err := p.parseAnd()
	if err != nil {
		return false, err
	}
	for p.peekIdent("or") {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return false, err
		}
		result = result || right
	}
	return result, nil
}

func (p *markerParser) parseAnd() (bool, error) {
	result, err := p.parsePrimary()
	if err != nil {
		return false, err
	}
	for p.peekIdent("and") {
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return false, err
		}
		result = result && right
	}
	return result, nil
}

func (p *markerParser) parsePrimary() (bool, error) {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokenLParen {
		p.pos++
		result, err := p.parseOr()
		if err != nil {
			return false, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenRParen {
			return false, malformedMarker(p.expression, "missing closing parenthesis")
		}
		p.pos++
		return result, nil
	}
	return p.parseComparison()
}

func (p *markerParser) parseComparison() (bool, error) {
	left, leftName, err := p.parseOperand()
	if err != nil {
		return false, err
	}
	op, err := p.parseOperator()
	if err != nil {
		return false, err
	}
	right, rightName, err := p.parseOperand()
	if err != nil {
		return false, err
	}
	if isVersionAttribute(leftName) || isVersionAttribute(rightName) {
		return compareVersions(left, op, right), nil
	}
	return compareStrings(left, op, right)
}

// parseOperand returns the resolved value plus, for identifiers, the
// attribute name (used to pick version comparison semantics).
func (p *markerParser) parseOperand() (string, string, error) {
	if p.pos >= len(p.tokens) {
		return "", "", malformedMarker(p.expression, "expected operand")
	}
	token := p.tokens[p.pos]
	switch token.kind {
	case tokenString:
		p.pos++
		return token.value, "", nil
	case tokenIdent:
		if token.value == "and" || token.value == "or" || token.value == "in" || token.value == "not" {
			return "", "", malformedMarker(p.expression, fmt.Sprintf("unexpected keyword %q", token.value))
		}
		p.pos++
		return p.env[token.value], token.value, nil
	default:
		return "", "", malformedMarker(p.expression, "expected operand")
	}
}

func (p *markerParser) parseOperator() (string, error) {
	if p.pos >= len(p.tokens) {
		return "", malformedMarker(p.expression, "expected comparison operator")
	}
	token := p.tokens[p.pos]
	if token.kind == tokenOperator {
		p.pos++
		return token.value, nil
	}
	if token.kind == tokenIdent && token.value == "in" {
		p.pos++
		return "in", nil
	}
	if token.kind == tokenIdent && token.value == "not" {
		if p.pos+1 < len(p.tokens) &&
			p.tokens[p.pos+1].kind == tokenIdent && p.tokens[p.pos+1].value == "in" {
			p.pos += 2
			return "not in", nil
		}
		return "", malformedMarker(p.expression, `"not" must be followed by "in"`)
	}
	return "", malformedMarker(p.expression, "expected comparison operator")
}

func (p *markerParser) peekIdent(value string) bool {
	return p.pos < len(p.tokens) &&
		p.tokens[p.pos].kind == tokenIdent && p.tokens[p.pos].value == value
}

func isVersionAttribute(name string) bool {
	return name == "python_version" || name == "python_full_version"
}

// compareVersions compares two values as PEP 440 versions. Values that do
// not parse as versions fall back to plain string comparison, matching
// how loosely-authored markers behave in the wild.
func compareVersions(left, op, right string) bool {
	leftVersion, leftErr := pep440.Parse(left)
	rightVersion, rightErr := pep440.Parse(right)
	if leftErr != nil || rightErr != nil {
		result, err := compareStrings(left, op, right)
		return err == nil && result
	}
	cmp := leftVersion.Compare(rightVersion)
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "~=":
		return cmp >= 0
	case "in":
		return strings.Contains(right, left)
	case "not in":
		return !strings.Contains(right, left)
	default:
		return false
	}
}

func compareStrings(left, op, right string) (bool, error) {
	switch op {
	case "==":
		return left == right, nil
	case "!=":
		return left != right, nil
	case "<":
		return left < right, nil
	case "<=":
		return left <= right, nil
	case ">":
		return left > right, nil
	case ">=":
		return left >= right, nil
	case "~=":
		return left == right, nil
	case "in":
		return strings.Contains(right, left), nil
	case "not in":
		return !strings.Contains(right, left), nil
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported marker operator %q", op))
	}
}

func malformedMarker(expression string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed marker expression %q: %s", expression, reason))
}
