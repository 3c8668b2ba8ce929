package bot

import (
	"context"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
)

// Catalog browsing: menus, cards, part pickers and list pagination.

func (e *Engine) sendLatestList(ctx context.Context, chatID int64) {
	total, err := e.catalog.CountContent(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("count content failed")
		return
	}
	if total == 0 {
		e.safeSend(ctx, chatID, textNoContent, nil)
		return
	}
	items, err := e.catalog.ListLatest(ctx, listPageSize, 0)
	if err != nil {
		e.log.Warn().Err(err).Msg("list latest failed")
		return
	}
	e.safeSend(ctx, chatID, textLatestList, contentListKeyboard(items, 1, total, string(listLatest)))
}

func (e *Engine) sendTopList(ctx context.Context, chatID int64) {
	total, err := e.catalog.CountContent(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("count content failed")
		return
	}
	if total == 0 {
		e.safeSend(ctx, chatID, textNoContent, nil)
		return
	}
	items, err := e.catalog.ListTop(ctx, listPageSize, 0)
	if err != nil {
		e.log.Warn().Err(err).Msg("list top failed")
		return
	}
	e.safeSend(ctx, chatID, textTopList, contentListKeyboard(items, 1, total, string(listTop)))
}

func (e *Engine) sendFavsList(ctx context.Context, userID, chatID int64) {
	total, err := e.catalog.CountFavorites(ctx, userID)
	if err != nil {
		e.log.Warn().Err(err).Int64("user_id", userID).Msg("count favorites failed")
		return
	}
	if total == 0 {
		e.safeSend(ctx, chatID, textFavsEmpty, nil)
		return
	}
	items, err := e.catalog.ListFavorites(ctx, userID, listPageSize, 0)
	if err != nil {
		e.log.Warn().Err(err).Int64("user_id", userID).Msg("list favorites failed")
		return
	}
	e.safeSend(ctx, chatID, textFavsList, contentListKeyboard(items, 1, total, string(listFavs)))
}

func (e *Engine) sendAccount(ctx context.Context, from *adapter.Sender, chatID int64) {
	e.safeSend(ctx, chatID, formatAccount(from.ID, from.Username), nil)
}

// sendContentCard renders the catalog card for one entry, as a photo when a
// poster is on file. Returns false when the entry does not exist.
func (e *Engine) sendContentCard(ctx context.Context, chatID, userID, contentID int64) bool {
	content, err := e.catalog.FindContent(ctx, contentID)
	if err != nil {
		e.log.Warn().Err(err).Int64("content_id", contentID).Msg("content lookup failed")
		return false
	}
	if content == nil {
		return false
	}

	isFav, err := e.catalog.IsFavorite(ctx, userID, contentID)
	if err != nil {
		e.log.Debug().Err(err).Int64("content_id", contentID).Msg("favorite lookup failed")
		isFav = false
	}

	card := formatCard(content)
	kb := contentCardKeyboard(contentID, isFav)
	if content.PosterFileID != "" {
		e.safeSendPhoto(ctx, chatID, content.PosterFileID, card, kb)
	} else {
		e.safeSend(ctx, chatID, card, kb)
	}
	return true
}

func (e *Engine) handleFavToggle(ctx context.Context, userID, contentID int64) callbackAck {
	fav, err := e.catalog.ToggleFavorite(ctx, userID, contentID)
	if err != nil {
		e.log.Warn().Err(err).Int64("user_id", userID).Int64("content_id", contentID).Msg("favorite toggle failed")
		return callbackAck{}
	}
	if fav {
		return callbackAck{text: "⭐ Saqlandi"}
	}
	return callbackAck{text: "O'chirildi"}
}

// handleWatch routes "watch" to the cheapest sufficient picker: a lone part
// is delivered outright, a single season goes straight to the part picker,
// multiple seasons get the season picker first.
func (e *Engine) handleWatch(ctx context.Context, userID, chatID int64, contentID int64) callbackAck {
	seasons, err := e.catalog.ListSeasons(ctx, contentID)
	if err != nil {
		e.log.Warn().Err(err).Int64("content_id", contentID).Msg("list seasons failed")
		return callbackAck{text: textNoPart}
	}
	if len(seasons) == 0 {
		return callbackAck{text: textNoPart}
	}

	if len(seasons) == 1 {
		season := seasons[0]
		parts, err := e.catalog.ListParts(ctx, contentID, season)
		if err != nil {
			e.log.Warn().Err(err).Int64("content_id", contentID).Msg("list parts failed")
			return callbackAck{text: textNoPart}
		}
		switch len(parts) {
		case 0:
			return callbackAck{text: textNoPart}
		case 1:
			if !e.deliverPart(ctx, chatID, &parts[0]) {
				return callbackAck{text: textNoContent, alert: true}
			}
			return callbackAck{}
		}
		e.safeSend(ctx, chatID, textPickPart, partsKeyboard(contentID, parts, 1, season))
		return callbackAck{}
	}

	e.safeSend(ctx, chatID, textPickSeason, seasonsKeyboard(contentID, seasons))
	return callbackAck{}
}

func (e *Engine) handlePartsPage(ctx context.Context, cb *adapter.Callback, chatID int64, cmd command) callbackAck {
	parts, err := e.catalog.ListParts(ctx, cmd.contentID, cmd.season)
	if err != nil {
		e.log.Warn().Err(err).Int64("content_id", cmd.contentID).Msg("list parts failed")
		return callbackAck{text: textNoPart}
	}
	if len(parts) == 0 {
		return callbackAck{text: textNoPart}
	}
	e.safeEditMarkup(ctx, chatID, cb.MessageID, partsKeyboard(cmd.contentID, parts, cmd.page, cmd.season))
	return callbackAck{}
}

func (e *Engine) handleSeasonPick(ctx context.Context, cb *adapter.Callback, chatID int64, cmd command) callbackAck {
	parts, err := e.catalog.ListParts(ctx, cmd.contentID, cmd.season)
	if err != nil {
		e.log.Warn().Err(err).Int64("content_id", cmd.contentID).Msg("list parts failed")
		return callbackAck{text: textNoPart}
	}
	if len(parts) == 0 {
		return callbackAck{text: textNoPart}
	}
	e.editOrResend(ctx, chatID, cb.MessageID, textPickPart, partsKeyboard(cmd.contentID, parts, 1, cmd.season))
	return callbackAck{}
}

func (e *Engine) handleSendPart(ctx context.Context, userID, chatID int64, cmd command) callbackAck {
	part, err := e.catalog.FindPartByNumber(ctx, cmd.contentID, cmd.season, cmd.part)
	if err != nil {
		e.log.Warn().Err(err).Int64("content_id", cmd.contentID).Int("part", cmd.part).Msg("part lookup failed")
		return callbackAck{text: textNoPart}
	}
	if part == nil {
		return callbackAck{text: textNoPart}
	}
	if !e.deliverPart(ctx, chatID, part) {
		return callbackAck{text: textNoContent, alert: true}
	}
	return callbackAck{}
}

// handleListPage swaps the keyboard of an existing list message for the
// requested page; the message text stays as is.
func (e *Engine) handleListPage(ctx context.Context, cb *adapter.Callback, userID, chatID int64, cmd command) callbackAck {
	page := cmd.page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * listPageSize

	var (
		items  []model.Content
		total  int
		prefix string
		err    error
	)

	switch cmd.list {
	case listLatest:
		prefix = string(listLatest)
		if total, err = e.catalog.CountContent(ctx); err == nil {
			items, err = e.catalog.ListLatest(ctx, listPageSize, offset)
		}
	case listTop:
		prefix = string(listTop)
		if total, err = e.catalog.CountContent(ctx); err == nil {
			items, err = e.catalog.ListTop(ctx, listPageSize, offset)
		}
	case listFavs:
		prefix = string(listFavs)
		if total, err = e.catalog.CountFavorites(ctx, userID); err == nil {
			items, err = e.catalog.ListFavorites(ctx, userID, listPageSize, offset)
		}
	case listSearch:
		prefix = searchListPrefix(cmd.query)
		if total, err = e.catalog.CountSearch(ctx, cmd.query); err == nil {
			items, err = e.catalog.Search(ctx, cmd.query, listPageSize, offset)
		}
	default:
		return callbackAck{}
	}

	if err != nil {
		e.log.Warn().Err(err).Str("list", string(cmd.list)).Msg("list page failed")
		return callbackAck{}
	}
	e.safeEditMarkup(ctx, chatID, cb.MessageID, contentListKeyboard(items, page, total, prefix))
	return callbackAck{}
}

// showSearchResults renders the first page of results for a query.
func (e *Engine) showSearchResults(ctx context.Context, chatID int64, query string) {
	total, err := e.catalog.CountSearch(ctx, query)
	if err != nil {
		e.log.Warn().Err(err).Str("query", query).Msg("search count failed")
		return
	}
	if total == 0 {
		e.safeSend(ctx, chatID, textNoResults, nil)
		return
	}
	items, err := e.catalog.Search(ctx, query, listPageSize, 0)
	if err != nil {
		e.log.Warn().Err(err).Str("query", query).Msg("search failed")
		return
	}
	e.safeSend(ctx, chatID, textResults, contentListKeyboard(items, 1, total, searchListPrefix(query)))
}
