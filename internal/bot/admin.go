package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
)

// Admin surface: the /admin command, the admin:* callbacks and the admin
// conversation inputs. Authorization is re-checked from the settings store on
// every action; the admin list can change under a live panel.

func (e *Engine) isAdmin(ctx context.Context, userID int64) bool {
	admins, err := e.settings.AdminIDs(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("admin list unavailable")
		return false
	}
	for _, id := range admins {
		if id == userID {
			return true
		}
	}
	return false
}

func (e *Engine) handleAdminCommand(ctx context.Context, userID, chatID int64) {
	if !e.isAdmin(ctx, userID) {
		e.safeSend(ctx, chatID, textAdminOnly, nil)
		return
	}
	e.safeSend(ctx, chatID, textAdminMenu, adminMenuKeyboard())
}

// dispatchAdminCommand handles every admin-only callback. A non-admin gets a
// single denial alert and nothing else happens.
func (e *Engine) dispatchAdminCommand(ctx context.Context, cmd command, cb *adapter.Callback, userID, chatID int64) callbackAck {
	if !e.isAdmin(ctx, userID) {
		return callbackAck{text: textAdminOnly, alert: true}
	}

	switch cmd.kind {
	case cmdBackAdmin:
		e.editOrResend(ctx, chatID, cb.MessageID, textAdminMenu, adminMenuKeyboard())

	case cmdAdminStats:
		e.sendStats(ctx, chatID)

	case cmdAdminForced:
		e.editOrResend(ctx, chatID, cb.MessageID, textAdminForcedMenu, adminForcedKeyboard())

	case cmdAdminForcedList:
		e.sendForcedList(ctx, chatID)

	case cmdAdminForcedAdd:
		e.setState(ctx, userID, model.StateAdminForcedAdd)
		e.safeSend(ctx, chatID, textAdminForcedAdd, nil)

	case cmdAdminForcedRemove:
		e.setState(ctx, userID, model.StateAdminForcedRemove)
		e.safeSend(ctx, chatID, textAdminForcedRemove, nil)

	case cmdAdminAdmins:
		e.editOrResend(ctx, chatID, cb.MessageID, textAdminAdminsMenu, adminAdminsKeyboard())

	case cmdAdminAdminsList:
		e.sendAdminsList(ctx, chatID)

	case cmdAdminAdminsAdd:
		e.setState(ctx, userID, model.StateAdminAdminsAdd)
		e.safeSend(ctx, chatID, textAdminAdminsAdd, nil)

	case cmdAdminAdminsRemove:
		e.setState(ctx, userID, model.StateAdminAdminsRemove)
		e.safeSend(ctx, chatID, textAdminAdminsRemove, nil)

	case cmdAdminBroadcast:
		e.setState(ctx, userID, model.StateBroadcastWaiting)
		e.safeSend(ctx, chatID, textBroadcastPrompt, nil)

	case cmdAdminSettings:
		e.editOrResend(ctx, chatID, cb.MessageID, textAdminSettingsMenu, adminSettingsKeyboard())

	case cmdAdminSettingsList:
		e.sendCategoryList(ctx, chatID, cmd.category)

	case cmdAdminPlaceholder:
		return callbackAck{text: textAdminNotImplemented, alert: true}
	}

	return callbackAck{}
}

func (e *Engine) sendStats(ctx context.Context, chatID int64) {
	st, err := e.stats.Totals(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("stats aggregation failed")
		return
	}
	text := fmt.Sprintf(
		"📊 Statistika\n\nKontent: %d ta\nQismlar: %d ta\nFoydalanuvchilar: %d ta\nKo'rishlar: %d ta",
		st.Content, st.Parts, st.Users, st.Views,
	)
	e.safeSend(ctx, chatID, text, nil)
}

func (e *Engine) sendForcedList(ctx context.Context, chatID int64) {
	channels, err := e.settings.ForcedChannels(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("forced channels unavailable")
		return
	}
	if len(channels) == 0 {
		e.safeSend(ctx, chatID, textAdminForcedListEmpty, nil)
		return
	}
	links, err := e.settings.ForcedLinks(ctx)
	if err != nil {
		links = nil
	}

	var b strings.Builder
	b.WriteString("Majburiy obuna kanallari:\n")
	for _, id := range channels {
		b.WriteString(fmt.Sprintf("- %d (%s)\n", id, forcedChannelURL(id, links)))
	}
	e.safeSend(ctx, chatID, b.String(), nil)
}

func (e *Engine) sendAdminsList(ctx context.Context, chatID int64) {
	admins, err := e.settings.AdminIDs(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("admin list unavailable")
		return
	}
	if len(admins) == 0 {
		e.safeSend(ctx, chatID, textAdminAdminsListEmpty, nil)
		return
	}

	var b strings.Builder
	b.WriteString("Adminlar:\n")
	for _, id := range admins {
		b.WriteString(fmt.Sprintf("- %d\n", id))
	}
	e.safeSend(ctx, chatID, b.String(), nil)
}

func (e *Engine) sendCategoryList(ctx context.Context, chatID int64, t model.ContentType) {
	title := t.Label()
	if t == model.ContentTypeSeries {
		title = "Drama"
	}

	total, err := e.catalog.CountByType(ctx, t)
	if err != nil {
		e.log.Warn().Err(err).Str("type", string(t)).Msg("count by type failed")
		return
	}
	if total == 0 {
		e.safeSend(ctx, chatID, textAdminSettingsEmpty, nil)
		return
	}
	items, err := e.catalog.ListByType(ctx, t, 100, 0)
	if err != nil {
		e.log.Warn().Err(err).Str("type", string(t)).Msg("list by type failed")
		return
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%d ta):\n", title, total))
	for _, c := range items {
		b.WriteString(fmt.Sprintf("- %s - qismi %d (kod %d)\n", c.Title, c.PartsTotal, c.ID))
	}
	e.safeSend(ctx, chatID, b.String(), nil)
}

// Conversation inputs for the admin flows. Validation failures re-prompt and
// keep the state so the admin can just send a corrected value.

func (e *Engine) handleForcedAddInput(ctx context.Context, userID, chatID int64, text string) {
	if !e.isAdmin(ctx, userID) {
		e.safeSend(ctx, chatID, textAdminOnly, nil)
		return
	}

	// Accepted formats: "<channel id>" or "<channel id>|<invite link>".
	idPart, link, _ := strings.Cut(text, "|")
	channelID, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		e.safeSend(ctx, chatID, textNumericIDRequired, nil)
		return
	}
	link = strings.TrimSpace(link)

	channels, err := e.settings.ForcedChannels(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("forced channels unavailable")
		return
	}
	exists := false
	for _, id := range channels {
		if id == channelID {
			exists = true
			break
		}
	}
	if !exists {
		channels = append(channels, channelID)
		if err := e.settings.SetForcedChannels(ctx, channels); err != nil {
			e.log.Error().Err(err).Int64("channel_id", channelID).Msg("save forced channels failed")
			return
		}
	}
	if link != "" {
		links, err := e.settings.ForcedLinks(ctx)
		if err != nil || links == nil {
			links = make(map[int64]string)
		}
		links[channelID] = link
		if err := e.settings.SetForcedLinks(ctx, links); err != nil {
			e.log.Error().Err(err).Int64("channel_id", channelID).Msg("save forced links failed")
		}
	}

	e.clearState(ctx, userID)
	e.safeSend(ctx, chatID, textSaved, adminMenuKeyboard())
}

func (e *Engine) handleForcedRemoveInput(ctx context.Context, userID, chatID int64, text string) {
	if !e.isAdmin(ctx, userID) {
		e.safeSend(ctx, chatID, textAdminOnly, nil)
		return
	}

	channelID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		e.safeSend(ctx, chatID, textNumericIDRequired, nil)
		return
	}

	channels, err := e.settings.ForcedChannels(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("forced channels unavailable")
		return
	}
	kept := channels[:0]
	for _, id := range channels {
		if id != channelID {
			kept = append(kept, id)
		}
	}
	if err := e.settings.SetForcedChannels(ctx, kept); err != nil {
		e.log.Error().Err(err).Int64("channel_id", channelID).Msg("save forced channels failed")
		return
	}
	if links, err := e.settings.ForcedLinks(ctx); err == nil {
		if _, ok := links[channelID]; ok {
			delete(links, channelID)
			if err := e.settings.SetForcedLinks(ctx, links); err != nil {
				e.log.Error().Err(err).Int64("channel_id", channelID).Msg("save forced links failed")
			}
		}
	}

	e.clearState(ctx, userID)
	e.safeSend(ctx, chatID, textSaved, adminMenuKeyboard())
}

func (e *Engine) handleAdminsAddInput(ctx context.Context, userID, chatID int64, text string) {
	if !e.isAdmin(ctx, userID) {
		e.safeSend(ctx, chatID, textAdminOnly, nil)
		return
	}

	newID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		e.safeSend(ctx, chatID, textNumericIDRequired, nil)
		return
	}

	admins, err := e.settings.AdminIDs(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("admin list unavailable")
		return
	}
	exists := false
	for _, id := range admins {
		if id == newID {
			exists = true
			break
		}
	}
	if !exists {
		admins = append(admins, newID)
		if err := e.settings.SetAdminIDs(ctx, admins); err != nil {
			e.log.Error().Err(err).Int64("admin_id", newID).Msg("save admins failed")
			return
		}
	}

	e.clearState(ctx, userID)
	e.safeSend(ctx, chatID, textSaved, adminMenuKeyboard())
}

func (e *Engine) handleAdminsRemoveInput(ctx context.Context, userID, chatID int64, text string) {
	if !e.isAdmin(ctx, userID) {
		e.safeSend(ctx, chatID, textAdminOnly, nil)
		return
	}

	removeID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		e.safeSend(ctx, chatID, textNumericIDRequired, nil)
		return
	}
	if removeID == userID {
		// Locking yourself out takes another admin.
		e.safeSend(ctx, chatID, textCannotRemoveSelf, nil)
		return
	}

	admins, err := e.settings.AdminIDs(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("admin list unavailable")
		return
	}
	kept := admins[:0]
	for _, id := range admins {
		if id != removeID {
			kept = append(kept, id)
		}
	}
	if err := e.settings.SetAdminIDs(ctx, kept); err != nil {
		e.log.Error().Err(err).Int64("admin_id", removeID).Msg("save admins failed")
		return
	}

	e.clearState(ctx, userID)
	e.safeSend(ctx, chatID, textSaved, adminMenuKeyboard())
}

func (e *Engine) handleBroadcastInput(ctx context.Context, userID, chatID int64, text string) {
	if !e.isAdmin(ctx, userID) {
		e.safeSend(ctx, chatID, textAdminOnly, nil)
		return
	}
	if strings.TrimSpace(text) == "" {
		e.safeSend(ctx, chatID, textBroadcastPrompt, nil)
		return
	}

	e.clearState(ctx, userID)

	sent, err := e.broadcast.BroadcastText(ctx, text)
	if err != nil {
		e.log.Error().Err(err).Msg("broadcast failed")
		return
	}
	e.safeSend(ctx, chatID, broadcastDoneText(sent), adminMenuKeyboard())
}
