// Package lark models the Lark docx clipboard record format: the JSON
// payload the editor's paste handler reads out of the
// data-lark-record-data attribute.
package lark

// DefaultAuthorID is the synthetic author stamped on every block
const DefaultAuthorID = "7092639913849389057"

// DefaultPageTitle is the title Lark shows for an untitled page
const DefaultPageTitle = "无标题"

// Object is a free-form JSON object
type Object map[string]any

// ClipboardData is the complete clipboard payload
type ClipboardData struct {
	IsCut                bool               `json:"isCut"`
	RootID               string             `json:"rootId"`
	ParentID             string             `json:"parentId"`
	BlockIDs             []int              `json:"blockIds"`
	RecordIDs            []string           `json:"recordIds"`
	RecordMap            map[string]*Record `json:"recordMap"`
	PayloadMap           Object             `json:"payloadMap"`
	Selection            []any              `json:"selection"`
	Extra                Extra              `json:"extra"`
	IsKeepQuoteContainer bool               `json:"isKeepQuoteContainer"`
	PasteFlag            string             `json:"pasteFlag"`
}

// Extra carries paste metadata the editor expects but never interprets
type Extra struct {
	Channel               string            `json:"channel"`
	PasteRandomID         string            `json:"pasteRandomId"`
	MentionPageTitle      map[string]string `json:"mention_page_title"`
	ExternalMentionURL    map[string]string `json:"external_mention_url"`
	IsEqualBlockSelection bool              `json:"isEqualBlockSelection"`
}

// Record wraps a snapshot under its own id. ID must equal the recordMap key.
type Record struct {
	ID       string    `json:"id"`
	Snapshot *Snapshot `json:"snapshot"`
}

// Snapshot is one block. Which optional fields are present depends on Type.
//
// Comments and Revisions are nil (JSON null) for page-like blocks and empty
// slices (JSON []) for everything else; the editor distinguishes the two.
type Snapshot struct {
	Type      BlockType `json:"type"`
	ParentID  string    `json:"parent_id"`
	Comments  []any     `json:"comments"`
	Revisions []any     `json:"revisions"`
	Locked    bool      `json:"locked"`
	Hidden    bool      `json:"hidden"`
	Author    string    `json:"author"`
	Children  []string  `json:"children"`

	Text      *TextData `json:"text,omitempty"`
	Align     *string   `json:"align,omitempty"`
	PageStyle *Object   `json:"page_style,omitempty"`
	Title     *TextData `json:"title,omitempty"`
	Level     int       `json:"level,omitempty"`
	Folded    *bool     `json:"folded,omitempty"`
	Done      *bool     `json:"done,omitempty"`
	Seq       string    `json:"seq,omitempty"`

	Language         string   `json:"language,omitempty"`
	Code             *string  `json:"code,omitempty"`
	IsLanguagePicked *bool    `json:"is_language_picked,omitempty"`
	Caption          *Caption `json:"caption,omitempty"`
	Wrap             *bool    `json:"wrap,omitempty"`

	Data                 *DiagramData `json:"data,omitempty"`
	AppBlockID           *string      `json:"app_block_id,omitempty"`
	BlockTypeID          string       `json:"block_type_id,omitempty"`
	Manifest             *Manifest    `json:"manifest,omitempty"`
	CommentDetails       *Object      `json:"comment_details,omitempty"`
	InteractionDataToken string       `json:"interaction_data_token,omitempty"`

	ColumnsID []string              `json:"columns_id,omitempty"`
	RowsID    []string              `json:"rows_id,omitempty"`
	ColumnSet map[string]ColumnInfo `json:"column_set,omitempty"`
	CellSet   map[string]CellInfo   `json:"cell_set,omitempty"`
}

// Caption is the code block caption
type Caption struct {
	Text *TextData `json:"text"`
}

// DiagramData is the payload of an isv (diagram) block
type DiagramData struct {
	Data  string `json:"data"`
	Theme string `json:"theme,omitempty"`
	View  string `json:"view,omitempty"`
}

// Manifest identifies the plugin that renders an isv block
type Manifest struct {
	ViewType   string `json:"view_type"`
	AppVersion string `json:"app_version"`
}

// ColumnInfo is a table column entry in column_set
type ColumnInfo struct {
	ColumnWidth int `json:"column_width"`
}

// CellInfo is a table cell entry in cell_set, keyed by rowID+colID
type CellInfo struct {
	BlockID   string    `json:"block_id"`
	MergeInfo MergeInfo `json:"merge_info"`
}

// MergeInfo is always 1x1; merges are never produced
type MergeInfo struct {
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
}

// Lookup returns the snapshot stored under id, or nil when the record is
// missing or malformed.
func (d *ClipboardData) Lookup(id string) *Snapshot {
	if d == nil || d.RecordMap == nil {
		return nil
	}
	rec, ok := d.RecordMap[id]
	if !ok || rec == nil {
		return nil
	}
	return rec.Snapshot
}

// Put stores a snapshot under id
func (d *ClipboardData) Put(id string, snap *Snapshot) {
	if d.RecordMap == nil {
		d.RecordMap = make(map[string]*Record)
	}
	d.RecordMap[id] = &Record{ID: id, Snapshot: snap}
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
