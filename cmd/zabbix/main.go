package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	zabbix "github.com/mimiro-io/zabbix-objects"
	"github.com/mimiro-io/zabbix-objects/internal/conf"
	"github.com/mimiro-io/zabbix-objects/internal/lookup"
	"github.com/mimiro-io/zabbix-objects/internal/objects"
	"github.com/mimiro-io/zabbix-objects/internal/security"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const usage = `Usage: zabbix [flags] COMMAND [ARGS]

Commands:
  host NAME              show a host
  group NAME             show a host group
  items HOST             list the items of a host
  triggers HOST          list the triggers of a host
  create-group NAME      create a host group and print its id
  add-host GROUP HOST    add a host to a group, creating the group when missing
  serve                  run the http inspector

Flags:
`

func main() {
	flags := pflag.NewFlagSet("zabbix", pflag.ExitOnError)
	flags.String("url", "", "server url, without api_jsonrpc.php")
	flags.String("user", "", "user to log in as")
	flags.String("password", "", "password of the user")
	flags.Duration("timeout", 0, "timeout of a single call")
	format := flags.String("format", "json", "output format: json or yaml")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	for key, flag := range map[string]string{
		"ZABBIX_URL":      "url",
		"ZABBIX_USER":     "user",
		"ZABBIX_PASSWORD": "password",
		"ZABBIX_TIMEOUT":  "timeout",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}
	if args[0] == "serve" {
		zabbix.Run()
		return
	}

	if err := run(context.Background(), args, *format, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zabbix: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, format string, out io.Writer) error {
	command, err := parseCommand(args)
	if err != nil {
		return err
	}
	if err := write(io.Discard, format, nil); err != nil {
		return err
	}

	env := conf.NewEnv()
	logger := conf.NewLogger(env)
	client, err := conf.NewStatsd(env)
	if err != nil {
		return err
	}
	session := zabbix.NewSession(env, logger, client)

	keeper := security.NewKeeper(session, security.NewCredentialProvider(env, logger), "", logger)
	if err := keeper.Login(ctx); err != nil {
		return err
	}

	dir := lookup.New(session, env.Lookup.CacheTTL, env.Lookup.CacheSize, logger)
	defer dir.Close()

	v, err := command(ctx, dir)
	if err != nil {
		return err
	}
	return write(out, format, v)
}

type command func(ctx context.Context, dir *lookup.Directory) (any, error)

func parseCommand(args []string) (command, error) {
	name, rest := args[0], args[1:]
	want := map[string]int{
		"host":         1,
		"group":        1,
		"items":        1,
		"triggers":     1,
		"create-group": 1,
		"add-host":     2,
	}
	n, ok := want[name]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", name)
	}
	if len(rest) != n {
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(rest))
	}

	switch name {
	case "host":
		return func(ctx context.Context, dir *lookup.Directory) (any, error) {
			return findHost(ctx, dir, rest[0])
		}, nil
	case "group":
		return func(ctx context.Context, dir *lookup.Directory) (any, error) {
			g, err := dir.HostGroup(ctx, rest[0])
			if err == nil && g == nil {
				err = fmt.Errorf("host group %s: %w", rest[0], lookup.ErrNotFound)
			}
			return g, err
		}, nil
	case "items":
		return func(ctx context.Context, dir *lookup.Directory) (any, error) {
			h, err := findHost(ctx, dir, rest[0])
			if err != nil {
				return nil, err
			}
			return h.Items(ctx)
		}, nil
	case "triggers":
		return func(ctx context.Context, dir *lookup.Directory) (any, error) {
			h, err := findHost(ctx, dir, rest[0])
			if err != nil {
				return nil, err
			}
			return h.Triggers(ctx)
		}, nil
	case "create-group":
		return func(ctx context.Context, dir *lookup.Directory) (any, error) {
			g, err := dir.EnsureGroup(ctx, rest[0])
			if err != nil {
				return nil, err
			}
			return map[string]string{"groupid": g.ID()}, nil
		}, nil
	default:
		return func(ctx context.Context, dir *lookup.Directory) (any, error) {
			ok, err := dir.AddHostToGroup(ctx, rest[1], rest[0])
			if err != nil {
				return nil, err
			}
			return map[string]bool{"added": ok}, nil
		}, nil
	}
}

func findHost(ctx context.Context, dir *lookup.Directory, name string) (*objects.Host, error) {
	h, err := dir.Host(ctx, name)
	if err == nil && h == nil {
		err = fmt.Errorf("host %s: %w", name, lookup.ErrNotFound)
	}
	return h, err
}

func write(out io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
