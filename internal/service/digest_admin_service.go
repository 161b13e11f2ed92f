package service

import (
	"context"
	"fmt"

	"message-digest-admin/internal/domain"
	"message-digest-admin/internal/form"
	"message-digest-admin/internal/repository"
	"message-digest-admin/internal/settings"

	"go.uber.org/zap"
)

// StagedContentFormID is the form id posted back on submit.
const StagedContentFormID = "tab_form"

// StagedContentForm 待发送内容审核表单
// 列出待发送摘要中的内容，并编辑欢迎语（welcome_message）
type StagedContentForm struct {
	staging  repository.StagingRepository
	settings *settings.Factory
	links    form.LinkBuilder
	t        form.Translator
	status   string
	action   string
	logger   *zap.Logger
}

// StagedContentFormOptions 构造参数
type StagedContentFormOptions struct {
	Staging  repository.StagingRepository
	Settings *settings.Factory
	Links    form.LinkBuilder
	// Translator defaults to form.Identity.
	Translator form.Translator
	// Status defaults to domain.StagedStatusSent.
	Status string
	Action string
	Logger *zap.Logger
}

func NewStagedContentForm(opts StagedContentFormOptions) *StagedContentForm {
	f := &StagedContentForm{
		staging:  opts.Staging,
		settings: opts.Settings,
		links:    opts.Links,
		t:        opts.Translator,
		status:   opts.Status,
		action:   opts.Action,
		logger:   opts.Logger,
	}
	if f.t == nil {
		f.t = form.Identity{}
	}
	if f.status == "" {
		f.status = domain.StagedStatusSent
	}
	if f.links == nil {
		f.links = form.NewPathLinkBuilder("")
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

var _ form.ConfigBackedForm = (*StagedContentForm)(nil)

func (f *StagedContentForm) FormID() string { return StagedContentFormID }

func (f *StagedContentForm) EditableConfigNames() []string {
	return []string{domain.AdminSettingsName}
}

// Build loads the welcome message and the staged items. A failed staging
// query fails the whole build; zero items yields a single placeholder row.
// A failed settings read leaves the field empty and is reported as a form error.
func (f *StagedContentForm) Build(ctx context.Context) (*form.Form, error) {
	var formErrors []string
	welcome := ""
	cfg, err := f.settings.Immutable(ctx, domain.AdminSettingsName)
	if err != nil {
		f.logger.Error("Failed to load digest admin settings", zap.String("config", domain.AdminSettingsName), zap.Error(err))
		formErrors = append(formErrors, f.t.T("The current configuration could not be loaded."))
	} else {
		welcome = cfg.GetString(domain.SettingWelcomeMessage)
	}

	table := &form.Table{
		Caption: f.t.T("Staged Content"),
		Header:  []string{f.t.T("Title")},
		Rows:    []form.Row{},
	}
	err = f.staging.ForEachStaged(ctx, f.status, func(it domain.StagedItem) error {
		link := f.links.Link(it.NodeID, it.Title)
		table.Rows = append(table.Rows, form.Row{Cells: []form.Cell{{Link: &link}}})
		return nil
	})
	if err != nil {
		f.logger.Error("Staged content query failed", zap.String("status", f.status), zap.Error(err))
		return nil, fmt.Errorf("failed to load staged content: %w", err)
	}
	if len(table.Rows) == 0 {
		table.Rows = append(table.Rows, form.Row{Cells: []form.Cell{{Text: f.t.T("No old content")}}})
	}
	f.logger.Debug("Built staged content form", zap.Int("rows", len(table.Rows)))

	return &form.Form{
		ID:     StagedContentFormID,
		Title:  f.t.T("Message digest"),
		Action: f.action,
		Table:  table,
		Fields: []form.TextField{{
			Name:        domain.SettingWelcomeMessage,
			Label:       f.t.T("Welcome message"),
			Description: f.t.T("Shown at the top of every digest email."),
			Value:       welcome,
			Multiline:   true,
			Markdown:    true,
		}},
		Submit: f.t.T("Save configuration"),
		Errors: formErrors,
	}, nil
}

// Submit persists welcome_message. Any string is accepted, including "".
// A missing field leaves the stored value untouched.
func (f *StagedContentForm) Submit(ctx context.Context, values form.Values) error {
	msg, ok := values.Get(domain.SettingWelcomeMessage)
	if !ok {
		return nil
	}
	cfg, err := f.settings.Editable(ctx, domain.AdminSettingsName)
	if err != nil {
		return fmt.Errorf("%w: %w", settings.ErrPersistence, err)
	}
	if err := cfg.Set(domain.SettingWelcomeMessage, msg).Save(ctx); err != nil {
		f.logger.Error("Failed to save digest admin settings", zap.String("config", domain.AdminSettingsName), zap.Error(err))
		return err
	}
	f.logger.Info("Saved digest admin settings", zap.String("config", domain.AdminSettingsName), zap.Int("welcome_message_len", len(msg)))
	return nil
}

// StagedItems returns the current staged items for reporting and export.
func (f *StagedContentForm) StagedItems(ctx context.Context) ([]domain.StagedItem, error) {
	return f.staging.ListStaged(ctx, f.status)
}

// Status is the staging status this form lists.
func (f *StagedContentForm) Status() string { return f.status }
