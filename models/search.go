package models

import "encoding/json"

type FeedStatus string

const (
	Idle        FeedStatus = "idle"
	Searching   FeedStatus = "searching"
	Loaded      FeedStatus = "loaded"
	LoadingMore FeedStatus = "loading_more"
)

// SearchState is the read-only snapshot a feed hands to the presentation layer.
type SearchState struct {
	Term        string     `json:"term"`
	Page        int        `json:"page"`
	Items       []Product  `json:"items"`
	HasMore     bool       `json:"has_more"`
	IsLoading   bool       `json:"is_loading"`
	HasSearched bool       `json:"has_searched"`
	Status      FeedStatus `json:"status"`
}

type FeedView struct {
	Term        string        `json:"term"`
	Page        int           `json:"page"`
	Items       []ProductView `json:"items"`
	HasMore     bool          `json:"has_more"`
	IsLoading   bool          `json:"is_loading"`
	HasSearched bool          `json:"has_searched"`
	Status      FeedStatus    `json:"status"`
	ShowWelcome bool          `json:"show_welcome"`
	ShowEmpty   bool          `json:"show_empty"`
	ShowEnd     bool          `json:"show_end"`
	Skeletons   int           `json:"skeletons"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

// SearchEnvelope mirrors the page-rendering document the upstream search
// endpoint wraps its results in. Only the path down to the items is decoded.
type SearchEnvelope struct {
	Item *struct {
		Props *struct {
			PageProps *struct {
				InitialData *struct {
					SearchResult *struct {
						ItemStacks []struct {
							Items []json.RawMessage `json:"items"`
						} `json:"itemStacks"`
					} `json:"searchResult"`
				} `json:"initialData"`
			} `json:"pageProps"`
		} `json:"props"`
	} `json:"item"`
}

// Items walks the envelope and reports false when any level is missing.
// Items are left undecoded so a single bad entry cannot spoil the page.
func (e SearchEnvelope) Items() ([]json.RawMessage, bool) {
	if e.Item == nil || e.Item.Props == nil || e.Item.Props.PageProps == nil ||
		e.Item.Props.PageProps.InitialData == nil ||
		e.Item.Props.PageProps.InitialData.SearchResult == nil {
		return nil, false
	}

	stacks := e.Item.Props.PageProps.InitialData.SearchResult.ItemStacks
	if len(stacks) == 0 || stacks[0].Items == nil {
		return nil, false
	}

	return stacks[0].Items, true
}
