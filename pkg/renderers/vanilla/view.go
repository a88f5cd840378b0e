package vanilla

import (
	"slices"

	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/render"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/validation"
)

type optionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	ErrorID     string       `json:"errorId"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"inputType"`
	Required    bool         `json:"required"`
	Placeholder string       `json:"placeholder"`
	Accept      string       `json:"accept"`
	Hint        string       `json:"hint"`
	Value       string       `json:"value"`
	Options     []optionView `json:"options"`
	Error       string       `json:"error"`
}

type listingView struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DescriptionHTML string `json:"descriptionHtml"`
	LongDescHTML    string `json:"longDescHtml"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	URL             string `json:"url"`
	FormURL         string `json:"formUrl"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type formView struct {
	RoleID      string       `json:"roleId"`
	RoleLabel   string       `json:"roleLabel"`
	Action      string       `json:"action"`
	Fields      []fieldView  `json:"fields"`
	Hidden      []hiddenView `json:"hidden"`
	Submitting  bool         `json:"submitting"`
	SubmitLabel string       `json:"submitLabel"`
	// PendingLabel replaces the button text once the browser submits.
	PendingLabel string `json:"pendingLabel"`
}

type themeView struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	Style      string `json:"style"`
	Stylesheet string `json:"stylesheet"`
}

type pageView struct {
	Kind          string                     `json:"kind"`
	Title         string                     `json:"title"`
	BasePath      string                     `json:"basePath"`
	Listings      []listingView              `json:"listings"`
	Listing       *listingView               `json:"listing,omitempty"`
	Form          *formView                  `json:"form,omitempty"`
	NotConfigured string                     `json:"notConfigured,omitempty"`
	Status        application.Status         `json:"status"`
	Dialog        *application.SuccessDialog `json:"dialog,omitempty"`
	Theme         themeView                  `json:"theme"`
}

func buildPageView(page render.Page, opts render.RenderOptions) pageView {
	view := pageView{
		Kind:     string(page.Kind),
		Title:    page.Title,
		BasePath: page.BasePath,
		Status:   opts.Status,
		Dialog:   opts.Dialog,
		Theme:    buildThemeView(opts),
	}
	for _, listing := range page.Listings {
		view.Listings = append(view.Listings, buildListingView(page.BasePath, listing))
	}
	if page.Listing != nil {
		listing := buildListingView(page.BasePath, *page.Listing)
		view.Listing = &listing
	}
	if page.Kind == render.PageRole {
		if page.Form == nil {
			view.NotConfigured = application.MsgNotConfigured
		} else {
			view.Form = buildFormView(page, opts)
		}
	}
	return view
}

func buildListingView(basePath string, listing catalog.Listing) listingView {
	return listingView{
		ID:              listing.ID,
		Title:           listing.Title,
		DescriptionHTML: descriptionHTML(listing.Description),
		LongDescHTML:    richHTML(listing.LongDesc),
		Icon:            iconSVG(listing.Icon),
		Color:           listing.Color,
		URL:             basePath + "/careers/" + listing.ID,
		FormURL:         listing.FormURL,
	}
}

const (
	submitLabel  = "Submit Application"
	pendingLabel = "Submitting..."
)

func buildFormView(page render.Page, opts render.RenderOptions) *formView {
	form := page.Form
	view := &formView{
		RoleID:       form.RoleID,
		RoleLabel:    form.RoleLabel,
		Action:       page.Action,
		Submitting:   opts.Submitting,
		SubmitLabel:  submitLabel,
		PendingLabel: pendingLabel,
	}
	if opts.Submitting {
		view.SubmitLabel = pendingLabel
	}
	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		view.Hidden = append(view.Hidden, hiddenView{Name: field.Name, Value: field.Value})
	}
	for _, field := range form.Fields {
		view.Fields = append(view.Fields, buildFieldView(field, opts))
	}
	return view
}

func buildFieldView(field schema.FieldDescriptor, opts render.RenderOptions) fieldView {
	view := fieldView{
		Name:        field.Name,
		ID:          controlID(field.Name),
		ErrorID:     errorID(field.Name),
		Label:       field.Label,
		Kind:        string(field.Kind),
		InputType:   field.Kind.InputType(),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Error:       opts.Errors[field.Name],
	}

	var selected []string
	switch value := opts.Values[field.Name].(type) {
	case string:
		view.Value = value
		selected = []string{value}
	case []string:
		selected = value
	}

	switch field.Kind {
	case schema.KindFile:
		view.Value = ""
		view.Accept = field.AcceptAttr()
		view.Hint = validation.AcceptedFilesHint
	case schema.KindSelect, schema.KindRadio, schema.KindCheckboxGroup:
		for idx, option := range field.Options {
			view.Options = append(view.Options, optionView{
				ID:       optionID(field.Name, idx),
				Label:    option.Label,
				Value:    option.Value,
				Selected: slices.Contains(selected, option.Value),
			})
		}
	}
	return view
}

func buildThemeView(opts render.RenderOptions) themeView {
	view := themeView{Stylesheet: "/assets/" + StylesheetName}
	cfg := opts.Theme
	if cfg == nil {
		return view
	}
	view.Name = cfg.Theme
	view.Variant = cfg.Variant
	view.Style = render.CSSVarsStyle(cfg)
	if cfg.AssetURL != nil {
		if url := cfg.AssetURL("stylesheet"); url != "" {
			view.Stylesheet = url
		}
	}
	return view
}
