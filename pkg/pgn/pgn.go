// Package pgn parses and emits games in Portable Game Notation: the Seven
// Tag Roster, an optional starting FEN, and SAN movetext.
package pgn

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/board/fen"
)

// Error wraps a PGN parsing or loading failure, identifying the offending
// move when one is known.
type Error struct {
	MoveIndex int // -1 if the failure is not move-specific
	SAN       string
	Msg       string
}

func (e *Error) Error() string {
	if e.MoveIndex < 0 {
		return fmt.Sprintf("pgn: %v", e.Msg)
	}
	return fmt.Sprintf("pgn: move %v (%v): %v", e.MoveIndex+1, e.SAN, e.Msg)
}

func newError(msg string, args ...interface{}) *Error {
	return &Error{MoveIndex: -1, Msg: fmt.Sprintf(msg, args...)}
}

// Data is the parsed form of a PGN document: the Seven Tag Roster plus any
// other tags and the SAN token sequence.
type Data struct {
	Event, Site, Date, Round, White, Black, Result string

	FEN string // empty if absent

	ExtraTags map[string]string

	Moves []string
}

var (
	tagPattern        = regexp.MustCompile(`^\[(\w+)\s+"([^"]*)"\]$`)
	moveNumberPattern = regexp.MustCompile(`\d+\.+`)
	resultPattern     = regexp.MustCompile(`1-0|0-1|1/2-1/2|\*`)
	commentPattern    = regexp.MustCompile(`\{[^}]*\}`)
	annotationPattern = regexp.MustCompile(`[!?]+`)
	nagPattern        = regexp.MustCompile(`\$\d+`)
	sanShapePattern   = regexp.MustCompile(`[a-h][1-8]`)
)

var standardTags = map[string]bool{
	"Event": true, "Site": true, "Date": true, "Round": true,
	"White": true, "Black": true, "Result": true, "FEN": true,
}

// Parse parses a full PGN document: tag pairs followed by movetext.
func Parse(pgnText string) (Data, error) {
	text := strings.TrimSpace(pgnText)
	if text == "" {
		return Data{}, newError("empty PGN document")
	}

	data := Data{
		Event: "?", Site: "?", Date: "????.??.??", Round: "?",
		White: "?", Black: "?", Result: "*",
		ExtraTags: map[string]string{},
	}

	var movetextLines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := tagPattern.FindStringSubmatch(line); m != nil {
			applyTag(&data, m[1], m[2])
			continue
		}
		movetextLines = append(movetextLines, line)
	}

	if len(movetextLines) > 0 {
		movetext := strings.Join(movetextLines, " ")
		data.Moves = parseMovetext(movetext)

		if data.Result == "*" {
			if m := resultPattern.FindString(movetext); m != "" {
				data.Result = m
			}
		}
	}

	return data, nil
}

func applyTag(data *Data, name, value string) {
	switch name {
	case "Event":
		data.Event = value
	case "Site":
		data.Site = value
	case "Date":
		data.Date = value
	case "Round":
		data.Round = value
	case "White":
		data.White = value
	case "Black":
		data.Black = value
	case "Result":
		data.Result = value
	case "FEN":
		data.FEN = value
	default:
		data.ExtraTags[name] = value
	}
}

// TokenizeMovetext applies the same movetext dialect used for game records to
// a bare sequence of moves (no tags, no result marker required): strips
// comments, variations, annotations, NAGs, move numbers and any trailing
// result, then keeps only SAN-shaped tokens. Used by pkg/opening to load
// catalog entries through the identical tokenizer.
func TokenizeMovetext(movetext string) []string {
	return parseMovetext(movetext)
}

// parseMovetext strips comments, variations, annotations, NAGs, move
// numbers and the result marker, then keeps only tokens shaped like SAN.
func parseMovetext(movetext string) []string {
	movetext = commentPattern.ReplaceAllString(movetext, "")
	movetext = stripParenthesizedVariations(movetext)
	movetext = annotationPattern.ReplaceAllString(movetext, "")
	movetext = nagPattern.ReplaceAllString(movetext, "")
	movetext = moveNumberPattern.ReplaceAllString(movetext, "")
	movetext = resultPattern.ReplaceAllString(movetext, "")

	var moves []string
	for _, token := range strings.Fields(movetext) {
		token = strings.Trim(token, ".")
		if token == "" {
			continue
		}
		token = strings.ReplaceAll(token, "0-0-0", "O-O-O")
		token = strings.ReplaceAll(token, "0-0", "O-O")
		if isSANShaped(token) {
			moves = append(moves, token)
		}
	}
	return moves
}

func stripParenthesizedVariations(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

func isSANShaped(token string) bool {
	switch token {
	case "O-O", "O-O-O":
		return true
	}
	stripped := strings.TrimRight(token, "+#")
	if stripped == "" {
		return false
	}
	first := stripped[0]
	if !strings.ContainsRune("KQRBNabcdefgh", rune(first)) {
		return false
	}
	return sanShapePattern.MatchString(stripped)
}

// Generate renders data's tags and moves as a canonical PGN document: a
// standard tag block, one tag per line, followed by movetext with move
// numbers and a trailing result.
func Generate(data Data) string {
	var sb strings.Builder

	writeTag(&sb, "Event", data.Event)
	writeTag(&sb, "Site", data.Site)
	writeTag(&sb, "Date", data.Date)
	writeTag(&sb, "Round", data.Round)
	writeTag(&sb, "White", data.White)
	writeTag(&sb, "Black", data.Black)
	writeTag(&sb, "Result", data.Result)
	if data.FEN != "" {
		writeTag(&sb, "FEN", data.FEN)
	}
	extra := make([]string, 0, len(data.ExtraTags))
	for name := range data.ExtraTags {
		if !standardTags[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		writeTag(&sb, name, data.ExtraTags[name])
	}
	sb.WriteString("\n")

	fullmove, blackFirst := startingCount(data)
	for i, move := range data.Moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		if blackFirst {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%v... ", fullmove))
			} else if i%2 == 1 {
				sb.WriteString(fmt.Sprintf("%v. ", fullmove+(i+1)/2))
			}
		} else if i%2 == 0 {
			sb.WriteString(fmt.Sprintf("%v. ", fullmove+i/2))
		}
		sb.WriteString(move)
	}
	if len(data.Moves) > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString(data.Result)

	return sb.String()
}

func writeTag(sb *strings.Builder, name, value string) {
	sb.WriteString(fmt.Sprintf("[%v %q]\n", name, value))
}

// startingCount derives the movetext numbering seed from the FEN tag: the
// fullmove number to count from, and whether the first SAN token is Black's
// (emitted as "N..."). Absent or undecodable FEN numbers from 1 with White
// to move.
func startingCount(data Data) (int, bool) {
	if data.FEN == "" {
		return 1, false
	}
	pos, err := fen.Decode(data.FEN)
	if err != nil {
		return 1, false
	}
	return pos.Fullmove, pos.Active == board.Black
}
