package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"tracknest/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sptr(s string) *string { return &s }

func dptr(t time.Time) *time.Time { return &t }

// fullUser exercises every persisted field, including free text containing
// the format's own structural characters.
func fullUser() *model.User {
	u := &model.User{
		ID:                 1,
		Name:               `Ada "The Brace" {Lovelace}, Esq.`,
		Email:              "ada@nest.com",
		PasswordHash:       "$2a$10$abcdefghijklmnopqrstuv",
		SecurityQuestion:   "First pet, comma included?",
		SecurityAnswerHash: "$2a$10$vutsrqponmlkjihgfedcba",
		Role:               model.RoleAdmin,
		Points:             120,
		Active:             true,
		RegistrationDate:   day(2024, 1, 15),
		Theme:              "Dark",
		Description:        sptr("Likes [brackets]\nand newlines\tand tabs"),
		Avatar:             sptr(`C:\avatars\ada.png`),
		ReminderFrequency:  sptr("Daily"),
		Language:           sptr("en"),
		FriendEmail:        sptr("grace@nest.com"),
		AccessibilityMode:  true,
	}
	u.AddBadge("First Habit Logged!")
	u.AddBadge("Weekly Streak Master")

	u.Goals = []model.Goal{
		{
			Title:        "Ship the tracker, v2",
			Description:  "Everything: {goals}, [habits], \"tasks\"",
			Deadline:     day(2024, 6, 1),
			Status:       model.GoalActive,
			Pinned:       true,
			Note:         sptr("note with, commas"),
			ReminderDate: dptr(day(2024, 5, 25)),
		},
		{
			Title:    "Old goal",
			Deadline: day(2023, 12, 1),
			Status:   model.GoalFailed,
			Archived: true,
		},
	}
	u.Habits = []model.Habit{
		{
			Name:       "Stretch",
			Frequency:  model.FrequencyDaily,
			Streak:     7,
			LastLogged: dptr(day(2024, 3, 7)),
			Pinned:     true,
		},
		{
			Name:      "Weekly review",
			Frequency: model.FrequencyWeekly,
		},
	}

	u.Tasks = []model.Task{
		{
			Name:     "Write docs, then rest",
			Due:      day(2024, 4, 1),
			Priority: model.PriorityHigh,
			Done:     true,
			Comments: []string{`first "comment"`, "second, with comma"},
		},
		{
			Name:     "Plain task",
			Due:      day(2024, 4, 2),
			Priority: model.PriorityLow,
		},
	}
	return u
}

func TestRoundTrip(t *testing.T) {
	second := &model.User{
		ID:               2,
		Name:             "Bob",
		Email:            "bob@nest.com",
		Role:             model.RoleNormal,
		Active:           false,
		RegistrationDate: day(2024, 2, 2),
		Theme:            "Light",
	}
	in := map[string]*model.User{
		"ada@nest.com": fullUser(),
		"bob@nest.com": second,
	}

	out, skipped, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped records: %v", skipped)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in["ada@nest.com"], out["ada@nest.com"])
	}
}

func TestEncodeDeterministic(t *testing.T) {
	users := map[string]*model.User{
		"b@x.com": {ID: 2, Email: "b@x.com", Active: true, Theme: "Light"},
		"a@x.com": {ID: 1, Email: "a@x.com", Active: true, Theme: "Light"},
	}
	first := Encode(users)
	for i := 0; i < 10; i++ {
		if got := Encode(users); string(got) != string(first) {
			t.Fatalf("encoding is not deterministic")
		}
	}
	if strings.Index(string(first), "a@x.com") > strings.Index(string(first), "b@x.com") {
		t.Fatalf("users not ordered by id:\n%s", first)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]", "[\n]\n"} {
		users, skipped, err := Decode([]byte(in))
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if len(users) != 0 || len(skipped) != 0 {
			t.Fatalf("decode %q: users=%v skipped=%v", in, users, skipped)
		}
	}
}

func TestDecodeSkipsMalformedRecord(t *testing.T) {
	good := map[string]*model.User{
		"a@x.com": {ID: 1, Email: "a@x.com", Active: true, Theme: "Light", RegistrationDate: day(2024, 1, 1)},
		"c@x.com": {ID: 3, Email: "c@x.com", Active: true, Theme: "Light", RegistrationDate: day(2024, 1, 1)},
	}
	encoded := string(Encode(good))

	// Splice a broken record between the two good ones.
	parts := strings.SplitN(encoded, ",\n", 2)
	if len(parts) != 2 {
		t.Fatalf("unexpected encoding shape:\n%s", encoded)
	}
	corrupt := parts[0] + ",\n  {\"id\":2,\"email\":\"b@x.com\",\"points\":oops},\n" + parts[1]

	users, skipped, err := Decode([]byte(corrupt))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("loaded %d users, want 2", len(users))
	}
	if _, ok := users["a@x.com"]; !ok {
		t.Fatalf("lost user before the corrupt record")
	}
	if _, ok := users["c@x.com"]; !ok {
		t.Fatalf("lost user after the corrupt record")
	}
	if len(skipped) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", skipped)
	}
	if !errors.Is(skipped[0], ErrRecordMalformed) {
		t.Fatalf("diagnostic %v does not wrap ErrRecordMalformed", skipped[0])
	}
}

func TestDecodeMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no id", `[{"name":"x","email":"a@x.com"}]`},
		{"zero id", `[{"id":0,"email":"a@x.com"}]`},
		{"no email", `[{"id":1,"name":"x"}]`},
	}
	for _, tc := range cases {
		users, skipped, err := Decode([]byte(tc.in))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(users) != 0 || len(skipped) != 1 {
			t.Fatalf("%s: users=%v skipped=%v", tc.name, users, skipped)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	in := `[{"id":1,"email":"a@x.com","role":"wizard"}]`
	users, skipped, err := Decode([]byte(in))
	if err != nil || len(skipped) != 0 {
		t.Fatalf("decode: err=%v skipped=%v", err, skipped)
	}
	u := users["a@x.com"]
	if u == nil {
		t.Fatalf("user not loaded")
	}
	if !u.Active {
		t.Fatalf("active should default to true")
	}
	if u.Theme != "Light" {
		t.Fatalf("theme = %q, want Light", u.Theme)
	}
	if u.Role != model.RoleNormal {
		t.Fatalf("unknown role = %q, want fallback to normal", u.Role)
	}
}

func TestDecodeNormalizesHabitStreak(t *testing.T) {
	in := `[{"id":1,"email":"a@x.com","habits":[` +
		`{"name":"orphan streak","freq":"Daily","streak":5,"last":""},` +
		`{"name":"orphan date","freq":"Daily","streak":0,"last":"2024-03-01"}]}]`
	users, skipped, err := Decode([]byte(in))
	if err != nil || len(skipped) != 0 {
		t.Fatalf("decode: err=%v skipped=%v", err, skipped)
	}
	habits := users["a@x.com"].Habits
	if habits[0].Streak != 0 || habits[0].LastLogged != nil {
		t.Fatalf("habit without last-logged kept streak %d", habits[0].Streak)
	}
	if habits[1].Streak != 1 || habits[1].LastLogged == nil {
		t.Fatalf("habit with last-logged normalized to streak %d", habits[1].Streak)
	}
}

func TestDecodeBadOptionalDate(t *testing.T) {
	in := `[{"id":1,"email":"a@x.com","habits":[` +
		`{"name":"h","freq":"Daily","streak":1,"last":"not-a-date"}]}]`
	users, skipped, err := Decode([]byte(in))
	if err != nil || len(skipped) != 0 {
		t.Fatalf("decode: err=%v skipped=%v", err, skipped)
	}
	h := users["a@x.com"].Habits[0]
	if h.LastLogged != nil {
		t.Fatalf("unparseable optional date should load as absent")
	}
	if h.Streak != 0 {
		t.Fatalf("streak = %d, want 0 after losing last-logged", h.Streak)
	}
}

func TestDecodeBadRequiredDateFailsRecord(t *testing.T) {
	in := `[{"id":1,"email":"a@x.com","tasks":[{"name":"t","due":"garbage","prio":"High","done":false}]}]`
	users, skipped, err := Decode([]byte(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 0 || len(skipped) != 1 {
		t.Fatalf("users=%v skipped=%v, want record skipped", users, skipped)
	}
}

func TestDecodeAggregateCorruption(t *testing.T) {
	for _, in := range []string{"not an aggregate", `[{"id":1`, `[{"id":1}`} {
		_, _, err := Decode([]byte(in))
		if err == nil {
			t.Fatalf("decode %q: expected hard error", in)
		}
	}
}

func TestWriteQuotedEscaping(t *testing.T) {
	u := &model.User{
		ID: 1, Email: "a@x.com", Active: true, Theme: "Light",
		Name: "quote \" backslash \\ newline \n tab \t cr \r end",
	}
	data := Encode(map[string]*model.User{"a@x.com": u})
	if strings.Count(string(data), "\n") != 3 {
		// Aggregate framing only: opening bracket line, the record line,
		// the closing bracket line.
		t.Fatalf("raw newline leaked into a record:\n%q", data)
	}

	out, skipped, err := Decode(data)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("decode: err=%v skipped=%v", err, skipped)
	}
	if out["a@x.com"].Name != u.Name {
		t.Fatalf("name = %q, want %q", out["a@x.com"].Name, u.Name)
	}
}
