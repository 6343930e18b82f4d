package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tracknest/internal/model"
)

var (
	// ErrRecordMalformed marks a single user record that could not be parsed.
	// Decode skips such records and reports them as diagnostics; the rest of
	// the file loads normally.
	ErrRecordMalformed = errors.New("record malformed")

	// ErrAggregateMalformed means the file is corrupt beyond per-record
	// recovery (the aggregate structure itself cannot be traversed).
	ErrAggregateMalformed = errors.New("aggregate malformed")
)

// Decode parses an aggregate previously written by Encode (or by the legacy
// writer, for files that contain no structural characters in free text).
//
// Malformed user records are skipped, each reported as one diagnostic
// wrapping ErrRecordMalformed; valid records still load. Empty input yields
// an empty mapping. Only corruption of the aggregate structure itself is a
// hard error.
func Decode(data []byte) (map[string]*model.User, []error, error) {
	users := make(map[string]*model.User)
	text := strings.TrimSpace(string(data))
	if text == "" {
		return users, nil, nil
	}

	segments, err := splitRecords(text)
	if err != nil {
		return nil, nil, err
	}

	var skipped []error
	for i, seg := range segments {
		u, err := decodeUser(seg)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("user record %d: %w: %v", i+1, ErrRecordMalformed, err))
			continue
		}
		users[u.Email] = u
	}
	return users, skipped, nil
}

// splitRecords splits the aggregate into one segment per top-level record.
// It tracks brace/bracket depth and string literals so that commas inside
// nested collections or quoted text do not split a record. A raw newline
// terminates an unclosed string literal, which confines a record with
// unbalanced quotes to its own line instead of letting it swallow the rest
// of the file.
func splitRecords(text string) ([]string, error) {
	if text[0] != '[' || text[len(text)-1] != ']' {
		return nil, fmt.Errorf("%w: not an aggregate", ErrAggregateMalformed)
	}
	body := strings.TrimSpace(text[1 : len(text)-1])
	if body == "" {
		return nil, nil
	}

	var segments []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip the escaped character
			case '"', '\n':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced nesting", ErrAggregateMalformed)
			}
		case ',':
			if depth == 0 {
				segments = append(segments, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced nesting", ErrAggregateMalformed)
	}
	segments = append(segments, strings.TrimSpace(body[start:]))
	return segments, nil
}

func decodeUser(seg string) (*model.User, error) {
	p := &parser{s: seg}
	u := &model.User{
		Active: true,
		Theme:  "Light",
	}

	err := p.object(func(name string) error {
		switch name {
		case "id":
			v, err := p.parseInt()
			if err != nil {
				return fmt.Errorf("id: %w", err)
			}
			u.ID = v
		case "name":
			return p.intoString(&u.Name)
		case "email":
			return p.intoString(&u.Email)
		case "role":
			s, err := p.parseString()
			if err != nil {
				return err
			}
			role, err := model.ParseRole(s)
			if err != nil {
				// Malformed optional detail: default rather than drop the record.
				role = model.RoleNormal
			}
			u.Role = role
		case "passwordHash":
			return p.intoString(&u.PasswordHash)
		case "securityQuestion":
			return p.intoString(&u.SecurityQuestion)
		case "securityAnswerHash":
			return p.intoString(&u.SecurityAnswerHash)
		case "registrationDate":
			s, err := p.parseString()
			if err != nil {
				return err
			}
			if d, derr := model.ParseDate(s); derr == nil {
				u.RegistrationDate = d
			}
		case "profileDescription":
			return p.intoOptString(&u.Description)
		case "avatar":
			return p.intoOptString(&u.Avatar)
		case "reminderFrequency":
			return p.intoOptString(&u.ReminderFrequency)
		case "language":
			return p.intoOptString(&u.Language)
		case "accessibilityMode":
			return p.intoBool(&u.AccessibilityMode)
		case "goals":
			return p.array(func() error {
				g, err := decodeGoal(p)
				if err != nil {
					return err
				}
				u.Goals = append(u.Goals, g)
				return nil
			})
		case "habits":
			return p.array(func() error {
				h, err := decodeHabit(p)
				if err != nil {
					return err
				}
				u.Habits = append(u.Habits, h)
				return nil
			})
		case "tasks":
			return p.array(func() error {
				t, err := decodeTask(p)
				if err != nil {
					return err
				}
				u.Tasks = append(u.Tasks, t)
				return nil
			})
		case "badges":
			vs, err := p.parseStringArray()
			if err != nil {
				return err
			}
			for _, b := range vs {
				u.AddBadge(b)
			}
		case "points":
			return p.intoInt(&u.Points)
		case "theme":
			return p.intoString(&u.Theme)
		case "friendEmail":
			return p.intoOptString(&u.FriendEmail)
		case "active":
			return p.intoBool(&u.Active)
		default:
			// Unknown fields are skipped so newer files degrade gracefully.
			return p.skipValue()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.ID <= 0 {
		return nil, errors.New("missing or invalid id")
	}
	if u.Email == "" {
		return nil, errors.New("missing email")
	}
	if u.Points < 0 {
		u.Points = 0
	}
	return u, nil
}

func decodeGoal(p *parser) (model.Goal, error) {
	g := model.Goal{Status: model.GoalActive}
	haveDeadline := false
	err := p.object(func(name string) error {
		switch name {
		case "title":
			return p.intoString(&g.Title)
		case "desc":
			return p.intoString(&g.Description)
		case "deadline":
			d, err := p.parseDate()
			if err != nil {
				return fmt.Errorf("deadline: %w", err)
			}
			g.Deadline = d
			haveDeadline = true
		case "status":
			s, err := p.parseString()
			if err != nil {
				return err
			}
			if st, serr := model.ParseGoalStatus(s); serr == nil {
				g.Status = st
			}
		case "pinned":
			return p.intoBool(&g.Pinned)
		case "note":
			return p.intoOptString(&g.Note)
		case "reminderDate":
			return p.intoOptDate(&g.ReminderDate)
		case "archived":
			return p.intoBool(&g.Archived)
		default:
			return p.skipValue()
		}
		return nil
	})
	if err != nil {
		return g, err
	}
	if !haveDeadline {
		return g, errors.New("goal missing deadline")
	}
	return g, nil
}

func decodeHabit(p *parser) (model.Habit, error) {
	h := model.Habit{Frequency: model.FrequencyDaily}
	err := p.object(func(name string) error {
		switch name {
		case "name":
			return p.intoString(&h.Name)
		case "freq":
			s, err := p.parseString()
			if err != nil {
				return err
			}
			if f, ferr := model.ParseFrequency(s); ferr == nil {
				h.Frequency = f
			}
		case "streak":
			return p.intoInt(&h.Streak)
		case "last":
			return p.intoOptDate(&h.LastLogged)
		case "pinned":
			return p.intoBool(&h.Pinned)
		case "note":
			return p.intoOptString(&h.Note)
		case "reminderDate":
			return p.intoOptDate(&h.ReminderDate)
		case "archived":
			return p.intoBool(&h.Archived)
		default:
			return p.skipValue()
		}
		return nil
	})
	if err != nil {
		return h, err
	}
	// Invariant: streak is 0 iff the last-logged date is absent.
	if h.LastLogged == nil {
		h.Streak = 0
	} else if h.Streak <= 0 {
		h.Streak = 1
	}
	return h, nil
}

func decodeTask(p *parser) (model.Task, error) {
	t := model.Task{Priority: model.PriorityMedium}
	haveDue := false
	err := p.object(func(name string) error {
		switch name {
		case "name":
			return p.intoString(&t.Name)
		case "due":
			d, err := p.parseDate()
			if err != nil {
				return fmt.Errorf("due: %w", err)
			}
			t.Due = d
			haveDue = true
		case "prio":
			s, err := p.parseString()
			if err != nil {
				return err
			}
			if pr, perr := model.ParsePriority(s); perr == nil {
				t.Priority = pr
			}
		case "done":
			return p.intoBool(&t.Done)
		case "pinned":
			return p.intoBool(&t.Pinned)
		case "reminderDate":
			return p.intoOptDate(&t.ReminderDate)
		case "archived":
			return p.intoBool(&t.Archived)
		case "comments":
			vs, err := p.parseStringArray()
			if err != nil {
				return err
			}
			t.Comments = vs
		default:
			return p.skipValue()
		}
		return nil
	})
	if err != nil {
		return t, err
	}
	if !haveDue {
		return t, errors.New("task missing due date")
	}
	return t, nil
}

// parser is a recursive-descent scanner over one record segment.
type parser struct {
	s string
	i int
}

func (p *parser) ws() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.i >= len(p.s) {
		return 0
	}
	return p.s[p.i]
}

func (p *parser) expect(c byte) error {
	p.ws()
	if p.peek() != c {
		return fmt.Errorf("offset %d: expected %q, found %q", p.i, string(c), string(p.peek()))
	}
	p.i++
	return nil
}

// object parses {name:value,...}, invoking field for each name with the
// parser positioned at the value.
func (p *parser) object(field func(name string) error) error {
	if err := p.expect('{'); err != nil {
		return err
	}
	p.ws()
	if p.peek() == '}' {
		p.i++
		return nil
	}
	for {
		name, err := p.parseString()
		if err != nil {
			return fmt.Errorf("field name: %w", err)
		}
		if err := p.expect(':'); err != nil {
			return err
		}
		if err := field(name); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		p.ws()
		switch p.peek() {
		case ',':
			p.i++
			p.ws()
		case '}':
			p.i++
			return nil
		default:
			return fmt.Errorf("offset %d: expected ',' or '}'", p.i)
		}
	}
}

// array parses [elem,...], invoking elem with the parser positioned at each
// element.
func (p *parser) array(elem func() error) error {
	if err := p.expect('['); err != nil {
		return err
	}
	p.ws()
	if p.peek() == ']' {
		p.i++
		return nil
	}
	for {
		if err := elem(); err != nil {
			return err
		}
		p.ws()
		switch p.peek() {
		case ',':
			p.i++
			p.ws()
		case ']':
			p.i++
			return nil
		default:
			return fmt.Errorf("offset %d: expected ',' or ']'", p.i)
		}
	}
}

func (p *parser) parseString() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for p.i < len(p.s) {
		c := p.s[p.i]
		switch c {
		case '"':
			p.i++
			return b.String(), nil
		case '\n':
			return "", fmt.Errorf("offset %d: unterminated string", p.i)
		case '\\':
			p.i++
			if p.i >= len(p.s) {
				return "", fmt.Errorf("offset %d: dangling escape", p.i)
			}
			switch p.s[p.i] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("offset %d: unknown escape %q", p.i, string(p.s[p.i]))
			}
			p.i++
		default:
			b.WriteByte(c)
			p.i++
		}
	}
	return "", fmt.Errorf("offset %d: unterminated string", p.i)
}

func (p *parser) parseInt() (int, error) {
	p.ws()
	start := p.i
	if p.peek() == '-' {
		p.i++
	}
	for p.i < len(p.s) && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		p.i++
	}
	if p.i == start {
		return 0, fmt.Errorf("offset %d: expected integer", p.i)
	}
	v, err := strconv.Atoi(p.s[start:p.i])
	if err != nil {
		return 0, fmt.Errorf("offset %d: %w", start, err)
	}
	return v, nil
}

func (p *parser) parseBool() (bool, error) {
	p.ws()
	switch {
	case strings.HasPrefix(p.s[p.i:], "true"):
		p.i += 4
		return true, nil
	case strings.HasPrefix(p.s[p.i:], "false"):
		p.i += 5
		return false, nil
	default:
		return false, fmt.Errorf("offset %d: expected boolean", p.i)
	}
}

// parseDate parses a required date field.
func (p *parser) parseDate() (time.Time, error) {
	s, err := p.parseString()
	if err != nil {
		return time.Time{}, err
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return d, nil
}

func (p *parser) parseStringArray() ([]string, error) {
	var vs []string
	err := p.array(func() error {
		s, err := p.parseString()
		if err != nil {
			return err
		}
		vs = append(vs, s)
		return nil
	})
	return vs, err
}

func (p *parser) intoString(dst *string) error {
	s, err := p.parseString()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// intoOptString reads a string field where empty means absent.
func (p *parser) intoOptString(dst **string) error {
	s, err := p.parseString()
	if err != nil {
		return err
	}
	if s == "" {
		*dst = nil
		return nil
	}
	*dst = &s
	return nil
}

// intoOptDate reads a date field where empty means absent. A present but
// unparseable value defaults to absent rather than failing the record.
func (p *parser) intoOptDate(dst **time.Time) error {
	s, err := p.parseString()
	if err != nil {
		return err
	}
	if s == "" {
		*dst = nil
		return nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		*dst = nil
		return nil
	}
	*dst = &d
	return nil
}

func (p *parser) intoInt(dst *int) error {
	v, err := p.parseInt()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (p *parser) intoBool(dst *bool) error {
	v, err := p.parseBool()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// skipValue consumes any value: string, number, boolean, array, or object.
func (p *parser) skipValue() error {
	p.ws()
	switch c := p.peek(); {
	case c == '"':
		_, err := p.parseString()
		return err
	case c == '{':
		return p.object(func(string) error { return p.skipValue() })
	case c == '[':
		return p.array(func() error { return p.skipValue() })
	case c == 't' || c == 'f':
		_, err := p.parseBool()
		return err
	case c == '-' || (c >= '0' && c <= '9'):
		_, err := p.parseInt()
		return err
	default:
		return fmt.Errorf("offset %d: unexpected %q", p.i, string(c))
	}
}
