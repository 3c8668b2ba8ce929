package bot

import (
	"net/url"
	"strconv"
	"strings"

	"telegram-cinehub-bot/internal/domain/model"
)

// Callback payloads are parsed exactly once, at the router boundary, into a
// closed set of typed commands. Handlers switch on command.kind and never
// look at the raw string again.

type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdSubCheck
	cmdMenuSearch
	cmdMenuLatest
	cmdMenuTop
	cmdMenuFavs
	cmdMenuAccount
	cmdMenuHelp
	cmdContent
	cmdFavToggle
	cmdWatch
	cmdPartsPage
	cmdSeasonPick
	cmdSendPart
	cmdListPage
	cmdBackMenu
	cmdBackAdmin
	cmdAdminStats
	cmdAdminForced
	cmdAdminForcedList
	cmdAdminForcedAdd
	cmdAdminForcedRemove
	cmdAdminAdmins
	cmdAdminAdminsList
	cmdAdminAdminsAdd
	cmdAdminAdminsRemove
	cmdAdminBroadcast
	cmdAdminSettings
	cmdAdminSettingsList
	cmdAdminPlaceholder
)

type listKind string

const (
	listLatest listKind = "latest"
	listTop    listKind = "top"
	listFavs   listKind = "favs"
	listSearch listKind = "search"
)

type command struct {
	kind      commandKind
	payload   string // deep-link payload carried by sub:check
	contentID int64
	season    int
	part      int
	page      int
	list      listKind
	query     string // decoded search query for search pagination
	category  model.ContentType
}

// parseCallbackData maps a raw callback payload to a command. Anything it
// cannot make sense of becomes cmdUnknown, which only acknowledges the
// callback.
func parseCallbackData(data string) command {
	data = strings.TrimSpace(data)

	switch data {
	case "":
		return command{kind: cmdUnknown}
	case "sub:check":
		return command{kind: cmdSubCheck}
	case "menu:search":
		return command{kind: cmdMenuSearch}
	case "menu:latest":
		return command{kind: cmdMenuLatest}
	case "menu:top":
		return command{kind: cmdMenuTop}
	case "menu:favs":
		return command{kind: cmdMenuFavs}
	case "menu:account":
		return command{kind: cmdMenuAccount}
	case "menu:help":
		return command{kind: cmdMenuHelp}
	case "back:menu":
		return command{kind: cmdBackMenu}
	case "back:admin":
		return command{kind: cmdBackAdmin}
	case "admin:stats":
		return command{kind: cmdAdminStats}
	case "admin:forced":
		return command{kind: cmdAdminForced}
	case "admin:forced:list":
		return command{kind: cmdAdminForcedList}
	case "admin:forced:add":
		return command{kind: cmdAdminForcedAdd}
	case "admin:forced:remove":
		return command{kind: cmdAdminForcedRemove}
	case "admin:admins":
		return command{kind: cmdAdminAdmins}
	case "admin:admins:list":
		return command{kind: cmdAdminAdminsList}
	case "admin:admins:add":
		return command{kind: cmdAdminAdminsAdd}
	case "admin:admins:remove":
		return command{kind: cmdAdminAdminsRemove}
	case "admin:broadcast":
		return command{kind: cmdAdminBroadcast}
	case "admin:settings":
		return command{kind: cmdAdminSettings}
	case "admin:add_content", "admin:add_part", "admin:edit":
		return command{kind: cmdAdminPlaceholder}
	}

	if payload, ok := strings.CutPrefix(data, "sub:check:"); ok {
		return command{kind: cmdSubCheck, payload: payload}
	}

	if rest, ok := strings.CutPrefix(data, "content:"); ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return command{kind: cmdContent, contentID: id}
		}
		return command{kind: cmdUnknown}
	}

	if rest, ok := strings.CutPrefix(data, "fav:"); ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return command{kind: cmdFavToggle, contentID: id}
		}
		return command{kind: cmdUnknown}
	}

	if rest, ok := strings.CutPrefix(data, "watch:"); ok {
		// watch:<contentID>[:...] — only the content id matters here, the
		// season is picked in a follow-up step.
		fields := strings.Split(rest, ":")
		if id, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			return command{kind: cmdWatch, contentID: id}
		}
		return command{kind: cmdUnknown}
	}

	if rest, ok := strings.CutPrefix(data, "parts:"); ok {
		// parts:<contentID>:<page> or parts:<contentID>:<season>:<page>
		fields := strings.Split(rest, ":")
		switch len(fields) {
		case 2:
			id, err1 := strconv.ParseInt(fields[0], 10, 64)
			page, err2 := strconv.Atoi(fields[1])
			if err1 == nil && err2 == nil {
				return command{kind: cmdPartsPage, contentID: id, season: 1, page: page}
			}
		case 3:
			id, err1 := strconv.ParseInt(fields[0], 10, 64)
			season, err2 := strconv.Atoi(fields[1])
			page, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				return command{kind: cmdPartsPage, contentID: id, season: season, page: page}
			}
		}
		return command{kind: cmdUnknown}
	}

	if rest, ok := strings.CutPrefix(data, "season:"); ok {
		fields := strings.Split(rest, ":")
		if len(fields) == 2 {
			id, err1 := strconv.ParseInt(fields[0], 10, 64)
			season, err2 := strconv.Atoi(fields[1])
			if err1 == nil && err2 == nil {
				return command{kind: cmdSeasonPick, contentID: id, season: season}
			}
		}
		return command{kind: cmdUnknown}
	}

	if rest, ok := strings.CutPrefix(data, "part:"); ok {
		// part:<contentID>:<part> or part:<contentID>:<season>:<part>
		fields := strings.Split(rest, ":")
		switch len(fields) {
		case 2:
			id, err1 := strconv.ParseInt(fields[0], 10, 64)
			part, err2 := strconv.Atoi(fields[1])
			if err1 == nil && err2 == nil {
				return command{kind: cmdSendPart, contentID: id, season: 1, part: part}
			}
		case 3:
			id, err1 := strconv.ParseInt(fields[0], 10, 64)
			season, err2 := strconv.Atoi(fields[1])
			part, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				return command{kind: cmdSendPart, contentID: id, season: season, part: part}
			}
		}
		return command{kind: cmdUnknown}
	}

	if rest, ok := strings.CutPrefix(data, "page:"); ok {
		return parseListPage(rest)
	}

	if rest, ok := strings.CutPrefix(data, "admin:settings:"); ok {
		switch rest {
		case "anime":
			return command{kind: cmdAdminSettingsList, category: model.ContentTypeAnime}
		case "movie":
			return command{kind: cmdAdminSettingsList, category: model.ContentTypeMovie}
		case "drama":
			return command{kind: cmdAdminSettingsList, category: model.ContentTypeSeries}
		}
		return command{kind: cmdUnknown}
	}

	return command{kind: cmdUnknown}
}

func parseListPage(rest string) command {
	if encoded, ok := strings.CutPrefix(rest, "search:"); ok {
		// page:search:<urlencoded query>:<page> — the query itself may
		// contain colons, so split on the last one.
		pos := strings.LastIndexByte(encoded, ':')
		if pos < 0 {
			return command{kind: cmdUnknown}
		}
		page, err := strconv.Atoi(encoded[pos+1:])
		if err != nil {
			return command{kind: cmdUnknown}
		}
		query, err := url.QueryUnescape(encoded[:pos])
		if err != nil {
			return command{kind: cmdUnknown}
		}
		return command{kind: cmdListPage, list: listSearch, query: query, page: page}
	}

	fields := strings.SplitN(rest, ":", 2)
	if len(fields) != 2 {
		return command{kind: cmdUnknown}
	}
	page, err := strconv.Atoi(fields[1])
	if err != nil {
		return command{kind: cmdUnknown}
	}
	switch listKind(fields[0]) {
	case listLatest:
		return command{kind: cmdListPage, list: listLatest, page: page}
	case listTop:
		return command{kind: cmdListPage, list: listTop, page: page}
	case listFavs:
		return command{kind: cmdListPage, list: listFavs, page: page}
	}
	return command{kind: cmdUnknown}
}
