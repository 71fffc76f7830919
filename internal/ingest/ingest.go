// Package ingest imports a directory of Markdown lore files into a new
// universe.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"comicstudio/internal/parser"
	"comicstudio/internal/universe"
)

// Document types understood by the importer.
const (
	TypeUniverse  = "universe"
	TypeCharacter = "character"
	TypeLocation  = "location"
	TypeScript    = "script"
	TypeNote      = "note"
	TypeSection   = "section"
	TypeItem      = "item"
)

type Result struct {
	Imported     map[universe.Kind]int
	FilesSkipped int
	Errors       []error
}

type Options struct {
	// Name overrides the universe name. Without it, a document of type
	// universe or the directory name is used.
	Name    string
	Exclude []string
	Now     func() time.Time
	Log     *zap.Logger
}

// Run walks roots in lexical order and builds one universe from every
// Markdown file it understands. Files without frontmatter or of an unknown
// type are skipped; malformed ones are reported in Result.Errors and do
// not stop the import.
func Run(ctx context.Context, roots []string, options Options) (universe.Universe, *Result, error) {
	now := time.Now
	if options.Now != nil {
		now = options.Now
	}
	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	files, err := walkMarkdownFiles(roots, options.Exclude)
	if err != nil {
		return universe.Universe{}, nil, fmt.Errorf("walking lore files: %w", err)
	}

	u := universe.NewUniverse(now())
	if len(roots) > 0 {
		if abs, err := filepath.Abs(roots[0]); err == nil {
			u.Name = filepath.Base(abs)
		}
	}
	result := &Result{Imported: make(map[universe.Kind]int)}
	b := &builder{u: &u, result: result}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return universe.Universe{}, nil, err
		}

		doc, err := parser.ParseFile(path)
		if err != nil {
			if errors.Is(err, parser.ErrNoFrontmatter) || errors.Is(err, parser.ErrMissingType) {
				log.Debug("skipping lore file", zap.String("path", path), zap.Error(err))
				result.FilesSkipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}

		if err := b.add(doc); err != nil {
			if errors.Is(err, errUnknownType) {
				log.Debug("skipping lore file", zap.String("path", path), zap.String("type", doc.Type))
				result.FilesSkipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("importing %s: %w", path, err))
		}
	}

	if options.Name != "" {
		u.Name = options.Name
	}
	log.Info("lore imported",
		zap.String("universe", u.Name),
		zap.Int("files", len(files)),
		zap.Int("skipped", result.FilesSkipped),
		zap.Int("errors", len(result.Errors)))
	return u.Normalize(), result, nil
}

var errUnknownType = errors.New("unknown document type")

type builder struct {
	u      *universe.Universe
	result *Result
}

func (b *builder) add(doc *parser.Document) error {
	body := strings.TrimSpace(doc.Body)
	switch doc.Type {
	case TypeUniverse:
		b.u.Name = doc.Title
		if body != "" {
			b.u.Description = body
		}
		b.result.Imported[universe.KindUniverse]++

	case TypeCharacter:
		traits, err := parseTraits(doc.Frontmatter["traits"])
		if err != nil {
			return err
		}
		c := universe.NewCharacter()
		c.Name = doc.Title
		if role := doc.String("role"); role != "" {
			c.Role = role
		}
		c.Backstory = body
		c.Traits = append(c.Traits, traits...)
		b.u.Characters = append(b.u.Characters, c)
		b.result.Imported[universe.KindCharacter]++

	case TypeLocation:
		l := universe.NewLocation()
		l.Name = doc.Title
		if kind := doc.String("kind"); kind != "" {
			l.Type = kind
		}
		l.Description = body
		b.u.Locations = append(b.u.Locations, l)
		b.result.Imported[universe.KindLocation]++

	case TypeScript:
		s := parseScript(doc.Title, doc.Body)
		if summary := doc.String("summary"); summary != "" {
			s.Summary = summary
		}
		b.u.Scripts = append(b.u.Scripts, s)
		b.result.Imported[universe.KindScript]++
		b.result.Imported[universe.KindScene] += len(s.Scenes)

	case TypeNote:
		n := universe.NewWorldNote(doc.Title)
		n.Content = body
		b.u.WorldNotes = append(b.u.WorldNotes, n)
		b.result.Imported[universe.KindWorldNote]++

	case TypeSection:
		s := universe.NewSection(doc.Title)
		s.Content = body
		b.u.ExtraSections = append(b.u.ExtraSections, s)
		b.result.Imported[universe.KindSection]++

	case TypeItem:
		category := doc.String("category")
		if category == "" {
			return fmt.Errorf("item %q has no category", doc.Title)
		}
		pairs, err := doc.Pairs("fields")
		if err != nil {
			return fmt.Errorf("item %q: %w", doc.Title, err)
		}
		item := universe.NewItem(category)
		item.Name = doc.Title
		item.Description = body
		item.Fields = append(item.Fields, parseFields(pairs)...)
		c := b.category(category)
		c.Items = append(c.Items, item)
		b.result.Imported[universe.KindItem]++

	default:
		return errUnknownType
	}
	return nil
}

// category returns the category with the given name, creating it the
// first time an item refers to it.
func (b *builder) category(name string) *universe.Category {
	for i := range b.u.CustomCategories {
		if strings.EqualFold(b.u.CustomCategories[i].Name, name) {
			return &b.u.CustomCategories[i]
		}
	}
	b.u.CustomCategories = append(b.u.CustomCategories, universe.NewCategory(name))
	b.result.Imported[universe.KindCategory]++
	return &b.u.CustomCategories[len(b.u.CustomCategories)-1]
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if isExcluded(path, excluded) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
