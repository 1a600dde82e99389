// Package summary renders the plain-text overview shown before a contract is
// submitted.
package summary

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/derive"
	"github.com/goliatone/go-contractgen/pkg/registry"
)

const templateName = "summary.tpl"

//go:embed templates/*.tpl
var templatesFS embed.FS

var (
	templateOnce sync.Once
	summaryTpl   *pongo2.Template
	templateErr  error
)

// Line is one labelled value.
type Line struct {
	Label string
	Value string
}

// Section groups related lines.
type Section struct {
	Title string
	Lines []Line
}

// View is the data handed to the template.
type View struct {
	Title    string
	Sections []Section
}

// Build collects the values of form the variant submits, formatted the way
// the contract will show them.
func Build(reg *registry.Registry, form contract.FormState, variant contract.Variant) View {
	if reg == nil {
		reg = registry.Default()
	}

	date, err := derive.FormatDateLocalized(form.ContractDate)
	if err != nil {
		date = form.ContractDate
	}

	line := func(field contract.Field, value string) Line {
		return Line{Label: reg.Label(field), Value: strings.TrimSpace(value)}
	}

	title := "Договор"
	if n := strings.TrimSpace(form.ContractNumber); n != "" {
		title = "Договор № " + n
	}

	view := View{
		Title: title,
		Sections: []Section{
			{
				Title: "Договор",
				Lines: []Line{
					line(contract.FieldContractDate, date),
				},
			},
			{
				Title: "Лицензиар",
				Lines: []Line{
					line(contract.FieldCitizenship, contract.ResolveCitizenship(form.Citizenship)),
					line(contract.FieldFullNameGenitive, form.FullNameGenitive),
					line(contract.FieldShortName, form.ShortName),
					line(contract.FieldNickname, form.Nickname),
					line(contract.FieldPassport, form.Passport),
					line(contract.FieldEmail, form.Email),
				},
			},
		},
	}

	if variant.Includes(contract.FieldINNSwift) {
		view.Sections = append(view.Sections, Section{
			Title: "Банковские реквизиты",
			Lines: []Line{
				line(contract.FieldINNSwift, form.INNSwift),
				line(contract.FieldBankDetails, form.BankDetails),
			},
		})
	}

	if variant.Includes(contract.FieldSongName) {
		percent := form.PaymentPercentage
		if p, ok := reg.Percentage(percent); ok {
			percent = p.Label
		}
		view.Sections = append(view.Sections, Section{
			Title: "Произведение",
			Lines: []Line{
				line(contract.FieldSongName, form.SongName),
				line(contract.FieldPerformer, form.Performer),
				line(contract.FieldLyricsAuthor, form.LyricsAuthor),
				line(contract.FieldMusicAuthor, form.MusicAuthor),
				line(contract.FieldPhonogramCreator, form.PhonogramCreator),
				line(contract.FieldPaymentPercentage, percent),
			},
		})
	}

	if variant.Includes(contract.FieldCoverImage) {
		view.Sections = append(view.Sections, Section{
			Title: "Обложка",
			Lines: []Line{line(contract.FieldCoverImage, coverText(form.CoverImage))},
		})
	}

	return view
}

// Render formats form as text using the embedded template.
func Render(reg *registry.Registry, form contract.FormState, variant contract.Variant) (string, error) {
	tpl, err := loadTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(pongo2.Context{"view": Build(reg, form, variant)}, &buf); err != nil {
		return "", fmt.Errorf("summary: execute template: %w", err)
	}
	return tidy(buf.String()), nil
}

func loadTemplate() (*pongo2.Template, error) {
	templateOnce.Do(func() {
		set := pongo2.NewSet("contractgen-summary", pongo2.NewFSLoader(templatesFS))
		summaryTpl, templateErr = set.FromFile("templates/" + templateName)
		if templateErr != nil {
			templateErr = fmt.Errorf("summary: parse template: %w", templateErr)
		}
	})
	return summaryTpl, templateErr
}

func coverText(res contract.Resource) string {
	if res == nil {
		return ""
	}
	if size := res.Size(); size >= 0 {
		return fmt.Sprintf("%s (%s)", res.Name(), humanSize(size))
	}
	return res.Name()
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f МБ", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f КБ", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d Б", n)
	}
}

// tidy strips trailing spaces and collapses blank-line runs left by template
// tags.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, l)
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}
