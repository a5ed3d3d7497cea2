package importer

import "encoding/json"

// Dump is the chrome.storage.local export shape. Timestamps are epoch
// milliseconds, matching the browser extension.
type Dump struct {
	Todos    []TodoRecord   `json:"todos"`
	Notes    []NoteRecord   `json:"notes"`
	Settings SettingsRecord `json:"settings"`
}

type TodoRecord struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	CreatedAt   int64  `json:"createdAt"`
	StartAt     *int64 `json:"startAt"`
	Deadline    int64  `json:"deadline"`
	Order       int    `json:"order"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	ManualOrder bool   `json:"manualOrder"`
}

type NoteRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

type SettingsRecord struct {
	FloatingWidgetEnabled   bool `json:"floatingWidgetEnabled"`
	FloatingWidgetCollapsed bool `json:"floatingWidgetCollapsed"`
}

// rawDump defers decoding of every field so one malformed value does not
// reject the whole file.
type rawDump struct {
	Todos    json.RawMessage `json:"todos"`
	Notes    json.RawMessage `json:"notes"`
	Settings json.RawMessage `json:"settings"`
}

// rawTodo mirrors TodoRecord with loose types. Numbers may arrive as
// floats and any field may be missing or of the wrong type.
type rawTodo struct {
	ID          any `json:"id"`
	Text        any `json:"text"`
	CreatedAt   any `json:"createdAt"`
	StartAt     any `json:"startAt"`
	Deadline    any `json:"deadline"`
	Order       any `json:"order"`
	Completed   any `json:"completed"`
	CompletedAt any `json:"completedAt"`
	ManualOrder any `json:"manualOrder"`
}

type rawNote struct {
	ID        any `json:"id"`
	Text      any `json:"text"`
	CreatedAt any `json:"createdAt"`
}

type rawSettings struct {
	FloatingWidgetEnabled   any `json:"floatingWidgetEnabled"`
	FloatingWidgetCollapsed any `json:"floatingWidgetCollapsed"`
}
