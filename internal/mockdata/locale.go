package mockdata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"backend-alpsconnect/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	LangItalian = "it"
	LangEnglish = "en"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed locales/*.yaml
var localeFS embed.FS

type tripText struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Equipment   []string `yaml:"equipment"`
}

// Locale holds every user-visible string the generator needs for one language.
type Locale struct {
	Lang       string                         `yaml:"lang"`
	Kit        map[string][]string            `yaml:"equipment"`
	Activities map[domain.ActivityType]string `yaml:"activities"`
	Generated  struct {
		Description       string `yaml:"description"`
		Group             string `yaml:"group"`
		Session           string `yaml:"session"`
		FutureDescription string `yaml:"futureDescription"`
		PastDescription   string `yaml:"pastDescription"`
	} `yaml:"generated"`
	BaseTrips map[string]tripText `yaml:"baseTrips"`
	Client    struct {
		Levels struct {
			Main   string `yaml:"main"`
			Second string `yaml:"second"`
			Third  string `yaml:"third"`
		} `yaml:"levels"`
		Country        string            `yaml:"country"`
		Transactions   map[string]string `yaml:"transactions"`
		ClimbingCourse string            `yaml:"climbingCourse"`
		Reviews        map[string]string `yaml:"reviews"`
	} `yaml:"client"`
	Guide struct {
		Bio            string            `yaml:"bio"`
		Reviews        map[string]string `yaml:"reviews"`
		Months         []string          `yaml:"months"`
		Mountaineering string            `yaml:"mountaineering"`
		AbroadEU       string            `yaml:"abroadEU"`
		AbroadNonEU    string            `yaml:"abroadNonEU"`
		Performance    []string          `yaml:"performance"`
	} `yaml:"guide"`
	Chats struct {
		Guide  map[string]string `yaml:"guide"`
		Client map[string]string `yaml:"client"`
	} `yaml:"chats"`
	Join struct {
		FriendName      string `yaml:"friendName"`
		Sent            string `yaml:"sent"`
		SentWithFriends string `yaml:"sentWithFriends"`
	} `yaml:"join"`
}

// FriendName is the display name of the n-th (1-based) friend in a group request.
func (l *Locale) FriendName(n int) string {
	return fmt.Sprintf(l.Join.FriendName, n)
}

// JoinConfirmation is the message shown after sending a join request for
// oneself plus the given number of friends.
func (l *Locale) JoinConfirmation(friends int) string {
	if friends > 0 {
		return fmt.Sprintf(l.Join.SentWithFriends, friends)
	}
	return l.Join.Sent
}

// Equipment returns the kit list for an activity, falling back to the
// generic list for unknown types.
func (l *Locale) Equipment(activity domain.ActivityType) []string {
	items, ok := l.Kit[string(activity)]
	if !ok {
		items = l.Kit["default"]
	}
	return append([]string(nil), items...)
}

var loadLocales = sync.OnceValues(func() (map[string]*Locale, error) {
	return parseLocales(localeFS, "locales")
})

func parseLocales(fsys fs.FS, dir string) (map[string]*Locale, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := map[string]*Locale{}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var loc Locale
		if err := yaml.Unmarshal(raw, &loc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		if loc.Lang == "" {
			return nil, fmt.Errorf("parse %s: missing lang", entry.Name())
		}
		out[loc.Lang] = &loc
	}
	return out, nil
}

// LookupLocale returns the catalog for a language tag such as "it" or "EN".
func LookupLocale(lang string) (*Locale, error) {
	locales, err := loadLocales()
	if err != nil {
		return nil, err
	}
	loc, ok := locales[NormalizeLang(lang)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return loc, nil
}

func NormalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// Equipment is the kit list for an activity in the given language.
func Equipment(activity domain.ActivityType, lang string) ([]string, error) {
	loc, err := LookupLocale(lang)
	if err != nil {
		return nil, err
	}
	return loc.Equipment(activity), nil
}
