package universe

// Tree is the full set of universes owned by one workbench.
type Tree []Universe

type Universe struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	CustomLogo       string      `json:"customLogo,omitempty"`
	Characters       []Character `json:"characters"`
	Locations        []Location  `json:"locations"`
	Scripts          []Script    `json:"scripts"`
	CustomCategories []Category  `json:"customCategories"`
	WorldNotes       []WorldNote `json:"worldNotes"`
	Images           []Image     `json:"images"`
	ExtraSections    []Section   `json:"extraSections"`
	CreatedAt        int64       `json:"createdAt"`
}

type Character struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Image          string    `json:"image,omitempty"`
	Backstory      string    `json:"backstory"`
	Traits         []Trait   `json:"traits"`
	Images         []Image   `json:"images"`
	CustomSections []Section `json:"customSections"`
}

type Trait struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Section is a free-form content block. Universes hold them as extra
// sections, characters as custom sections.
type Section struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Images  []Image `json:"images"`
}

type Location struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Images      []Image `json:"images"`
}

type Script struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Scenes  []Scene `json:"scenes"`
	Images  []Image `json:"images"`
}

type Scene struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description"`
	Dialogues   []Dialogue `json:"dialogues"`
}

type Dialogue struct {
	ID      string `json:"id"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
	Images      []Image `json:"images"`
}

type Field struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type WorldNote struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Image is a visual reference. URL holds the embedded image data.
type Image struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Author is persisted on its own and never belongs to a universe.
type Author struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Photo string `json:"photo,omitempty"`
}
