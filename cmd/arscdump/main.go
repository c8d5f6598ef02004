// arscdump decodes the resource table of an .arsc or .apk file and writes a
// flattened JSON dump. It can keep decoded tables in a bolt cache and answer
// single-value queries against a previously written dump.
//
//	arscdump app.apk                     dump to stdout
//	arscdump -o res.json app.apk         dump to file
//	arscdump -cache tables.db app.apk    decode through the cache
//	arscdump -q string/app_name res.json query a dump
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v2"

	"github.com/kwf2030/arsc"
	"github.com/kwf2030/arsc/cache"
)

type config struct {
	Strict bool   `yaml:"strict"`
	Output string `yaml:"output"`
	Cache  string `yaml:"cache"`
}

func main() {
	cfgFile := flag.String("c", "", "yaml config file")
	strict := flag.Bool("strict", false, "abort on format violations")
	output := flag.String("o", "", "write the json dump to this file instead of stdout")
	cachePath := flag.String("cache", "", "bolt database holding decoded tables")
	query := flag.String("q", "", "print one value from a json dump, e.g. string/app_name")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: arscdump [flags] <file.arsc|file.apk|dump.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	if *query != "" {
		if err := queryDump(input, *query); err != nil {
			fatal(err)
		}
		return
	}

	cfg := config{Strict: *strict, Output: *output, Cache: *cachePath}
	if *cfgFile != "" {
		if err := loadConfig(*cfgFile, &cfg); err != nil {
			fatal(err)
		}
		// Explicit flags win over the config file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "strict":
				cfg.Strict = *strict
			case "o":
				cfg.Output = *output
			case "cache":
				cfg.Cache = *cachePath
			}
		})
	}

	table, err := loadTable(input, cfg)
	if err != nil {
		fatal(err)
	}

	data, err := json.MarshalIndent(table.Entries(), "", "  ")
	if err != nil {
		fatal(err)
	}
	if cfg.Output == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
		fatal(err)
	}
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadTable(input string, cfg config) (*arsc.Table, error) {
	var store *cache.Store
	var key string
	if cfg.Cache != "" {
		var err error
		if store, err = cache.Open(cfg.Cache); err != nil {
			return nil, err
		}
		defer store.Close()
		if key, err = cache.FileKey(input); err != nil {
			return nil, err
		}
		if table, err := store.Get(key); err != nil {
			return nil, err
		} else if table != nil {
			slog.Debug("cache hit", "key", key)
			return table, nil
		}
	}

	d := arsc.NewDecoder(cfg.Strict)
	var table *arsc.Table
	var err error
	if strings.EqualFold(filepath.Ext(input), ".apk") {
		table, err = d.DecodeApk(input)
	} else {
		table, err = d.DecodeFile(input)
	}
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.Put(key, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// queryDump scans a json dump for the first entry matching "type/name" and
// prints its value, without unmarshalling the whole dump.
func queryDump(dumpPath, query string) error {
	typeName, resName, ok := strings.Cut(query, "/")
	if !ok {
		return fmt.Errorf("query must be type/name, got %q", query)
	}
	data, err := os.ReadFile(dumpPath)
	if err != nil {
		return err
	}

	found := false
	_, err = jsonparser.ArrayEach(data, func(v []byte, _ jsonparser.ValueType, _ int, _ error) {
		if found {
			return
		}
		t, _ := jsonparser.GetString(v, "type")
		n, _ := jsonparser.GetString(v, "name")
		if t != typeName || n != resName {
			return
		}
		value, e := jsonparser.GetString(v, "value")
		if e != nil {
			return
		}
		found = true
		fmt.Println(value)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no entry %s/%s in %s", typeName, resName, dumpPath)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "arscdump:", err)
	os.Exit(1)
}
