package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/mimiro-io/zabbix-objects/internal/api"
	"github.com/mimiro-io/zabbix-objects/internal/lookup"
	"github.com/mimiro-io/zabbix-objects/internal/objects"
	"go.uber.org/zap"
)

// ObjectHandler serves read-only views of hosts, host groups and items.
type ObjectHandler struct {
	directory *lookup.Directory
	logger    *zap.SugaredLogger
}

func NewObjectHandler(handler *Handler, directory *lookup.Directory) *ObjectHandler {
	return &ObjectHandler{
		directory: directory,
		logger:    handler.Logger.Named("objects"),
	}
}

func (h *ObjectHandler) host(c echo.Context) error {
	host, err := h.findHost(c, param(c, "name"))
	if err != nil {
		return err
	}
	return render(c, host.Entity)
}

func (h *ObjectHandler) hostItems(c echo.Context) error {
	host, err := h.findHost(c, param(c, "name"))
	if err != nil {
		return err
	}
	items, err := host.Items(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ObjectHandler) hostTriggers(c echo.Context) error {
	host, err := h.findHost(c, param(c, "name"))
	if err != nil {
		return err
	}
	triggers, err := host.Triggers(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, triggers)
}

func (h *ObjectHandler) hostGroup(c echo.Context) error {
	name := param(c, "name")
	group, err := h.directory.HostGroup(c.Request().Context(), name)
	if err != nil {
		return h.fail(err)
	}
	if group == nil {
		return h.fail(fmt.Errorf("host group %s: %w", name, lookup.ErrNotFound))
	}
	if c.QueryParam("format") == "html" {
		return render(c, group.Entity)
	}
	body := group.JSON()
	hosts := make([]string, 0, len(group.Hosts))
	for name := range group.Hosts {
		hosts = append(hosts, name)
	}
	sort.Strings(hosts)
	body["hosts"] = hosts
	return c.JSON(http.StatusOK, body)
}

func (h *ObjectHandler) itemHosts(c echo.Context) error {
	host, err := h.findHost(c, param(c, "host"))
	if err != nil {
		return err
	}
	key := param(c, "key")
	item, ok := host.ItemsByKey[key]
	if !ok {
		return h.fail(fmt.Errorf("item %s on %s: %w", key, host, lookup.ErrNotFound))
	}
	hosts, err := item.Hosts(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, hosts)
}

func (h *ObjectHandler) findHost(c echo.Context, name string) (*objects.Host, error) {
	host, err := h.directory.Host(c.Request().Context(), name)
	if err != nil {
		return nil, h.fail(err)
	}
	if host == nil {
		return nil, h.fail(fmt.Errorf("host %s: %w", name, lookup.ErrNotFound))
	}
	return host, nil
}

func (h *ObjectHandler) fail(err error) error {
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case api.IsValidation(err):
		h.logger.Warnf("Invalid record from server: %v", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Warnf("Server call failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}

func render(c echo.Context, e *objects.Entity) error {
	if c.QueryParam("format") == "html" {
		page, err := e.HTML()
		if err != nil {
			return err
		}
		return c.HTML(http.StatusOK, page)
	}
	return c.JSON(http.StatusOK, e)
}

func param(c echo.Context, name string) string {
	v := c.Param(name)
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}
