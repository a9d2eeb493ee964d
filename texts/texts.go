// Package texts provides the localized strings printed on the custody kit and
// shown at the console prompts.
//
// Translations live in embedded YAML files under locales/ and are loaded into
// a go-i18n bundle. Missing translations fall back to English, and a message
// ID that is missing everywhere is returned verbatim.
package texts

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const DefaultLang = "en"

// Catalog resolves messages for one language.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
}

// New loads every embedded locale and selects lang, falling back to English.
func New(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", f.Name(), err)
		}
	}

	if lang == "" {
		lang = DefaultLang
	}
	return &Catalog{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang, DefaultLang),
		lang:      lang,
	}, nil
}

// Lang returns the requested language tag.
func (c *Catalog) Lang() string {
	return c.lang
}

// Languages lists the languages with an embedded locale file.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, t := range tags {
		langs = append(langs, t.String())
	}
	sort.Strings(langs)
	return langs
}

func (c *Catalog) localize(id string, data map[string]any) string {
	return c.localizeCount(id, data, nil)
}

func (c *Catalog) localizeCount(id string, data map[string]any, count any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data, PluralCount: count})
	if err != nil {
		return id
	}
	return msg
}

// Intro is the intro page text for the given number of custodians. Lines are
// separated by "\n".
func (c *Catalog) Intro(addressWithLock string, custodians int) string {
	return c.localizeCount("intro", map[string]any{"AddressWithLock": addressWithLock, "Custodians": custodians}, custodians)
}

// Instructions is the custodian guidance printed under the shield.
func (c *Catalog) Instructions() string {
	return c.localize("instructions", nil)
}

// RedeemScriptLabel prefixes the redeem script on disclosure pages.
func (c *Catalog) RedeemScriptLabel(script string) string {
	return c.localize("redeem_script_label", map[string]any{"RedeemScript": script})
}

func (c *Catalog) PromptAddress() string      { return c.localize("prompt_address", nil) }
func (c *Catalog) PromptRedeemScript() string { return c.localize("prompt_redeem_script", nil) }
func (c *Catalog) PublicKeyHeading() string   { return c.localize("public_key", nil) }
func (c *Catalog) AddressHeading() string     { return c.localize("address", nil) }
func (c *Catalog) Success() string            { return c.localize("success", nil) }

func (c *Catalog) Printer(name string) string {
	return c.localize("printer", map[string]any{"Printer": name})
}
