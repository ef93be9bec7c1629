package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

type parseOptions struct {
	Parent                  *parseOptions
	EnvPrefix               string
	EnvIsDisabled           bool
	FlagPrefix              string
	Category                string
	AlreadyHasDefaultValues bool
	RequiredByDefault       bool
}

// Для приложений с yaml конфигом + env
var CommonParseOptions = parseOptions{
	AlreadyHasDefaultValues: true,
	RequiredByDefault:       true,
}

// Для приложений только с env
var DefaultParseOptions = parseOptions{
	RequiredByDefault: true,
}

var (
	tagNameEnv        = "env"        // полностью меняет часть после префикса для env. env:"-" - убрать ввод значения через env.
	tagNameEnvPrefix  = "envprefix"  // полностью перезаписывает префикс env (envprefix:"APP2", envprefix:"")
	tagNameFlag       = "flag"       // полностью меняет часть после префикса для флага. flag:"-" - убрать ввод значения через флаг
	tagNameFlagPrefix = "flagprefix" // полностью перезаписывает префикс флага
	tagNameCLI        = "cli"        // опции через запятую: hidden,required,optional. cli:"-" - игнор поля.
	tagNameUsage      = "usage"      // описание (usage:"делает что-то")
	tagNameDefault    = "default"    // дефолт значение (default:"10")
	tagNameCategory   = "category"   // категория в команде help
)

var durationTypes = []reflect.Type{
	reflect.TypeOf(time.Duration(0)),
	reflect.TypeOf(Duration(0)),
}

// Для приложений без субкоманд.
// opts:
//   - CommonParseOptions - Для приложений с yaml конфигом + env.
//   - DefaultParseOptions - Для приложений только с env.
//   - или сам собери структуру.
//
// Пример:
//
//	CommonHelp("common", "common utils", "common utils for other apps", &cfg, CommonParseOptions)
func CommonHelp(name, usage, description string, cfg any, opts parseOptions) error {
	helpWasCalled, err := WorkHelp(name, usage, description, cfg, opts)
	if helpWasCalled && err == nil {
		os.Exit(0)
	}

	return err
}

func WorkHelp(name, usage, description string, cfg any, opts parseOptions) (bool, error) {
	flags, err := parseFlags(cfg, opts)
	if err != nil {
		return false, fmt.Errorf("ParseFlags: %w", err)
	}

	var helpWasCalled bool

	original := cli.HelpPrinterCustom
	cli.HelpPrinterCustom = func(w io.Writer, templ string, data any, customFunc map[string]any) {
		helpWasCalled = true

		original(w, templ, data, customFunc)
	}

	defer func() {
		cli.HelpPrinterCustom = original
	}()

	cmd := &cli.Command{
		Name:        name,
		Usage:       usage,
		Description: description,
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		return helpWasCalled, fmt.Errorf("cmd.Run: %w", err)
	}

	return helpWasCalled, nil
}

func parseFlags(c any, opts parseOptions) ([]cli.Flag, error) {
	if c == nil {
		return nil, errors.New("config must not be nil")
	}

	v := reflect.ValueOf(c)

	if v.Kind() != reflect.Ptr {
		return nil, errors.New("config must be pointer")
	}

	v = v.Elem()

	if v.Kind() != reflect.Struct {
		return nil, errors.New("config must be struct")
	}

	t := v.Type()

	flags := make([]cli.Flag, 0, v.NumField())

	for i := range v.NumField() {
		res, err := parseField(t.Field(i), v.Field(i), opts)
		if err != nil {
			return nil, err
		}

		flags = append(flags, res...)
	}

	return flags, nil
}

type flagOptions[T any] struct {
	Value T
	Dest  *T
	flagOptionsCommon
}

type flagOptionsCommon struct {
	Name       string
	Category   string
	HasValue   bool
	Env        string
	DisableEnv bool
	Usage      string
	Required   bool
	Hidden     bool
}

// fieldSource - откуда брать значение по умолчанию для флага
type fieldSource struct {
	name         string
	fromConfig   bool
	defaultValue string
	hasDefault   bool
}

// nolint: gocyclo, cyclop
func parseField(
	t reflect.StructField,
	v reflect.Value,
	opts parseOptions,
) ([]cli.Flag, error) {
	var flagPrefix, envPrefix string

	if v, ok := t.Tag.Lookup(tagNameFlagPrefix); ok {
		opts.FlagPrefix = v
	}

	if v, ok := t.Tag.Lookup(tagNameEnvPrefix); ok {
		opts.EnvPrefix = v
	}

	if opts.FlagPrefix != "" {
		flagPrefix = opts.FlagPrefix + "-"
	}

	if opts.EnvPrefix != "" {
		envPrefix = opts.EnvPrefix + "_"
	}

	argName, ok := t.Tag.Lookup(tagNameFlag)
	switch {
	case !ok:
		argName = flagPrefix + toKebabCase(t.Name)
	case argName == "-":
		argName = ""
	default:
		argName = flagPrefix + argName
	}

	disableEnv := opts.EnvIsDisabled

	var envName string

	if !disableEnv {
		envName, ok = t.Tag.Lookup(tagNameEnv)
		switch {
		case !ok:
			envName = envPrefix + toScreamingSnakeCase(t.Name)
		case envName == "-":
			disableEnv = true
		default:
			envName = envPrefix + envName
		}
	}

	category, ok := t.Tag.Lookup(tagNameCategory)
	switch {
	case ok && v.Kind() != reflect.Struct:
		return nil, fmt.Errorf("category tag is allowed only for structures")
	case !ok && v.Kind() == reflect.Struct:
		category = t.Name
	case !ok && v.Kind() != reflect.Struct:
		category = opts.Category
	}

	if !v.CanSet() {
		return nil, fmt.Errorf("private field: %s", t.Name)
	}

	var src fieldSource

	src.name = t.Name
	if !opts.AlreadyHasDefaultValues {
		src.defaultValue, src.hasDefault = t.Tag.Lookup(tagNameDefault)
	}

	usage, _ := t.Tag.Lookup(tagNameUsage)

	var (
		cliRequired bool
		cliOptional bool
		cliHidden   bool
	)

	cliOptionsStr, _ := t.Tag.Lookup(tagNameCLI)
	if cliOptionsStr == "-" {
		return nil, nil
	}

	if cliOptionsStr != "" {
		cliOptions := strings.Split(cliOptionsStr, ",")
		cliRequired = slices.Contains(cliOptions, "required")
		cliOptional = slices.Contains(cliOptions, "optional")
		cliHidden = slices.Contains(cliOptions, "hidden")
	}

	if !cliOptional {
		cliRequired = cliRequired || opts.RequiredByDefault
	}

	if cliHidden && cliRequired {
		return nil, fmt.Errorf("flag %v: must not be hidden and required at the same time, add \"optional\" to cli tag", t.Name)
	}

	configValueIsZero := cliRequired && v.IsZero() && v.Kind() != reflect.Bool && opts.AlreadyHasDefaultValues
	src.fromConfig = opts.AlreadyHasDefaultValues && !configValueIsZero

	foc := flagOptionsCommon{
		Name:       argName,
		Category:   category,
		Env:        envName,
		DisableEnv: disableEnv,
		Usage:      usage,
		Required:   cliRequired,
		Hidden:     cliHidden,
	}

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	addr := v.Addr()

	if slices.Contains(durationTypes, v.Type()) {
		fo, err := newFlagOptions(addr, foc, src, time.ParseDuration)
		if err != nil {
			return nil, err
		}

		return []cli.Flag{durationFlag(fo)}, nil
	}

	// для корректной работы в случаях, когда T1 в конфиге объявлен как "type T1 T2", делается конвертация в T2 для правильной работы каста
	switch v.Kind() {
	case reflect.Struct:
		envPrefixFromTag, hasEnvPrefixFromTag := t.Tag.Lookup(tagNameEnv)
		if hasEnvPrefixFromTag {
			envPrefix += envPrefixFromTag
		} else {
			envPrefix += toScreamingSnakeCase(t.Name)
		}

		flagPrefixFromTag, hasFlagPrefixFromTag := t.Tag.Lookup(tagNameFlag)
		if hasFlagPrefixFromTag {
			flagPrefix += flagPrefixFromTag
		} else {
			flagPrefix += toKebabCase(t.Name)
		}

		newOpts := parseOptions{
			Parent:                  &opts,
			Category:                category,
			EnvPrefix:               envPrefix,
			EnvIsDisabled:           opts.EnvIsDisabled || envPrefixFromTag == "-",
			FlagPrefix:              flagPrefix,
			RequiredByDefault:       cliRequired,
			AlreadyHasDefaultValues: opts.AlreadyHasDefaultValues,
		}

		return parseFlags(addr.Interface(), newOpts)

	case reflect.Slice:
		if sv := v.Type().Elem().Kind(); sv != reflect.String {
			return nil, fmt.Errorf("slice type %v is unsupported", sv)
		}

		fo, err := newFlagOptions(addr, foc, src, func(s string) ([]string, error) {
			return strings.Split(s, ","), nil
		})
		if err != nil {
			return nil, err
		}

		return []cli.Flag{stringSliceFlag(fo)}, nil

	case reflect.String:
		fo, err := newFlagOptions(addr, foc, src, func(s string) (string, error) { return s, nil })
		if err != nil {
			return nil, err
		}

		return []cli.Flag{stringFlag(fo)}, nil

	case reflect.Bool:
		fo, err := newFlagOptions(addr, foc, src, strconv.ParseBool)
		if err != nil {
			return nil, err
		}

		return []cli.Flag{boolFlag(fo)}, nil

	case reflect.Int:
		fo, err := newFlagOptions(addr, foc, src, strconv.Atoi)
		if err != nil {
			return nil, err
		}

		return []cli.Flag{intFlag(fo)}, nil

	case reflect.Int64:
		fo, err := newFlagOptions(addr, foc, src, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
		if err != nil {
			return nil, err
		}

		return []cli.Flag{int64Flag(fo)}, nil

	case reflect.Uint:
		fo, err := newFlagOptions(addr, foc, src, func(s string) (uint, error) {
			n, err := strconv.ParseUint(s, 10, 0)
			return uint(n), err
		})
		if err != nil {
			return nil, err
		}

		return []cli.Flag{uintFlag(fo)}, nil

	case reflect.Uint16:
		fo, err := newFlagOptions(addr, foc, src, func(s string) (uint16, error) {
			n, err := strconv.ParseUint(s, 10, 16)
			return uint16(n), err
		})
		if err != nil {
			return nil, err
		}

		return []cli.Flag{uint16Flag(fo)}, nil

	case reflect.Float64:
		fo, err := newFlagOptions(addr, foc, src, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
		if err != nil {
			return nil, err
		}

		return []cli.Flag{float64Flag(fo)}, nil

	default:
		return nil, fmt.Errorf("type %v is unsupported", v.Type())
	}
}

// newFlagOptions приводит поле к *T и выбирает значение флага:
// сначала значение из конфига, затем тег default.
func newFlagOptions[T any](addr reflect.Value, foc flagOptionsCommon, src fieldSource, parse func(string) (T, error)) (flagOptions[T], error) {
	var zero T

	dst, ok := addr.Convert(reflect.TypeOf(&zero)).Interface().(*T)
	if !ok {
		return flagOptions[T]{}, fmt.Errorf("failed to cast *%T: %s", zero, src.name)
	}

	fo := flagOptions[T]{
		flagOptionsCommon: foc,
		Dest:              dst,
	}

	switch {
	case src.fromConfig:
		fo.HasValue = true
		fo.Value = *dst
	case src.hasDefault:
		v, err := parse(src.defaultValue)
		if err != nil {
			return flagOptions[T]{}, fmt.Errorf("invalid default for %s: %w", src.name, err)
		}

		fo.HasValue = true
		fo.Value = v
	}

	if fo.HasValue {
		fo.Required = false
	}

	return fo, nil
}

func envSources(opts flagOptionsCommon) cli.ValueSourceChain {
	if opts.DisableEnv {
		return cli.ValueSourceChain{}
	}

	return cli.EnvVars(opts.Env)
}

func stringFlag(opts flagOptions[string]) *cli.StringFlag {
	flag := &cli.StringFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func stringSliceFlag(opts flagOptions[[]string]) *cli.StringSliceFlag {
	flag := &cli.StringSliceFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func boolFlag(opts flagOptions[bool]) *cli.BoolFlag {
	flag := &cli.BoolFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func intFlag(opts flagOptions[int]) *cli.IntFlag {
	flag := &cli.IntFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func int64Flag(opts flagOptions[int64]) *cli.Int64Flag {
	flag := &cli.Int64Flag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func uintFlag(opts flagOptions[uint]) *cli.UintFlag {
	flag := &cli.UintFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func uint16Flag(opts flagOptions[uint16]) *cli.Uint16Flag {
	flag := &cli.Uint16Flag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func float64Flag(opts flagOptions[float64]) *cli.FloatFlag {
	flag := &cli.FloatFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

func durationFlag(opts flagOptions[time.Duration]) *cli.DurationFlag {
	flag := &cli.DurationFlag{Name: opts.Name, Category: opts.Category, Destination: opts.Dest, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden, Sources: envSources(opts.flagOptionsCommon)}
	if opts.HasValue {
		flag.Value = opts.Value
	}

	return flag
}

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

func toSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")

	return strings.ToLower(snake)
}

func toKebabCase(str string) string {
	return strings.ReplaceAll(toSnakeCase(str), "_", "-")
}

func toScreamingSnakeCase(str string) string {
	return strings.ToUpper(toSnakeCase(str))
}
