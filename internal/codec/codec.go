// Package codec maps the full user mapping to and from the tracker's
// on-disk aggregate record format.
//
// The format keeps the legacy file's logical shape: a single `[ ... ]`
// aggregate of user records, each record a `{name:value,...}` object with a
// fixed field order and nested ordered collections for goals, habits, tasks,
// badges, and task comments. Absent optional fields are written as the empty
// string and read back as absent. Booleans are literal true/false, dates are
// YYYY-MM-DD.
//
// Unlike the legacy writer, strings are quoted with backslash escaping of
// `"`, `\`, and control characters, so free text can contain the format's
// structural delimiters without corrupting the file. Legacy files whose text
// fields contain no such characters parse unchanged.
//
// Derived state (task overdue) and runtime-only state (recently completed,
// habit history, daily target, last login) are never stored.
package codec

import (
	"bytes"
	"sort"
	"strconv"
	"time"

	"tracknest/internal/model"
)

// Encode serializes the full user mapping. Output is deterministic: users are
// ordered by their monotonically assigned ID.
func Encode(users map[string]*model.User) []byte {
	ordered := make([]*model.User, 0, len(users))
	for _, u := range users {
		ordered = append(ordered, u)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var b bytes.Buffer
	b.WriteString("[\n")
	for i, u := range ordered {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("  ")
		encodeUser(&b, u)
	}
	b.WriteString("\n]\n")
	return b.Bytes()
}

func encodeUser(b *bytes.Buffer, u *model.User) {
	o := object{b: b}
	o.open()
	o.num("id", u.ID)
	o.str("name", u.Name)
	o.str("email", u.Email)
	o.str("role", string(u.Role))
	o.str("passwordHash", u.PasswordHash)
	o.str("securityQuestion", u.SecurityQuestion)
	o.str("securityAnswerHash", u.SecurityAnswerHash)
	o.date("registrationDate", u.RegistrationDate)
	o.optStr("profileDescription", u.Description)
	o.optStr("avatar", u.Avatar)
	o.optStr("reminderFrequency", u.ReminderFrequency)
	o.optStr("language", u.Language)
	o.boolean("accessibilityMode", u.AccessibilityMode)

	o.key("goals")
	b.WriteByte('[')
	for i := range u.Goals {
		if i > 0 {
			b.WriteByte(',')
		}
		encodeGoal(b, &u.Goals[i])
	}
	b.WriteByte(']')

	o.key("habits")
	b.WriteByte('[')
	for i := range u.Habits {
		if i > 0 {
			b.WriteByte(',')
		}
		encodeHabit(b, &u.Habits[i])
	}
	b.WriteByte(']')

	o.key("tasks")
	b.WriteByte('[')
	for i := range u.Tasks {
		if i > 0 {
			b.WriteByte(',')
		}
		encodeTask(b, &u.Tasks[i])
	}
	b.WriteByte(']')

	o.strArray("badges", u.Badges)
	o.num("points", u.Points)
	o.str("theme", u.Theme)
	o.optStr("friendEmail", u.FriendEmail)
	o.boolean("active", u.Active)
	o.close()
}

func encodeGoal(b *bytes.Buffer, g *model.Goal) {
	o := object{b: b}
	o.open()
	o.str("title", g.Title)
	o.str("desc", g.Description)
	o.date("deadline", g.Deadline)
	o.str("status", string(g.Status))
	o.boolean("pinned", g.Pinned)
	o.optStr("note", g.Note)
	o.optDate("reminderDate", g.ReminderDate)
	o.boolean("archived", g.Archived)
	o.close()
}

func encodeHabit(b *bytes.Buffer, h *model.Habit) {
	o := object{b: b}
	o.open()
	o.str("name", h.Name)
	o.str("freq", string(h.Frequency))
	o.num("streak", h.Streak)
	o.optDate("last", h.LastLogged)
	o.boolean("pinned", h.Pinned)
	o.optStr("note", h.Note)
	o.optDate("reminderDate", h.ReminderDate)
	o.boolean("archived", h.Archived)
	o.close()
}

func encodeTask(b *bytes.Buffer, t *model.Task) {
	o := object{b: b}
	o.open()
	o.str("name", t.Name)
	o.date("due", t.Due)
	o.str("prio", string(t.Priority))
	o.boolean("done", t.Done)
	o.boolean("pinned", t.Pinned)
	o.optDate("reminderDate", t.ReminderDate)
	o.boolean("archived", t.Archived)
	o.strArray("comments", t.Comments)
	o.close()
}

// object writes one {name:value,...} record, handling separators.
type object struct {
	b *bytes.Buffer
	n int
}

func (o *object) open()  { o.b.WriteByte('{') }
func (o *object) close() { o.b.WriteByte('}') }

func (o *object) key(name string) {
	if o.n > 0 {
		o.b.WriteByte(',')
	}
	o.n++
	writeQuoted(o.b, name)
	o.b.WriteByte(':')
}

func (o *object) str(name, v string) {
	o.key(name)
	writeQuoted(o.b, v)
}

func (o *object) num(name string, v int) {
	o.key(name)
	o.b.WriteString(strconv.Itoa(v))
}

func (o *object) boolean(name string, v bool) {
	o.key(name)
	o.b.WriteString(strconv.FormatBool(v))
}

func (o *object) date(name string, t time.Time) {
	o.str(name, model.FormatDate(t))
}

// optDate writes the empty-string absent marker for nil.
func (o *object) optDate(name string, t *time.Time) {
	if t == nil {
		o.str(name, "")
		return
	}
	o.date(name, *t)
}

func (o *object) optStr(name string, s *string) {
	if s == nil {
		o.str(name, "")
		return
	}
	o.str(name, *s)
}

func (o *object) strArray(name string, vs []string) {
	o.key(name)
	o.b.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			o.b.WriteByte(',')
		}
		writeQuoted(o.b, v)
	}
	o.b.WriteByte(']')
}

func writeQuoted(b *bytes.Buffer, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}
