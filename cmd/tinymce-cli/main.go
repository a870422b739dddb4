package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formgen-tinymce/pkg/config"
	"github.com/goliatone/go-formgen-tinymce/pkg/locale"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

const (
	modeRender = "render"
	modeInit   = "init"
	modeClean  = "clean"
)

type options struct {
	mode        string
	configPath  string
	editor      string
	name        string
	id          string
	input       string
	output      string
	hostVersion string
	features    string
	language    string
}

// promptFunc asks the user for HTML when no input file is given.
type promptFunc func(message string) (string, error)

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", modeRender, "render | init | clean")
	flag.StringVar(&opts.configPath, "config", "", "editor configuration file (YAML or JSON)")
	flag.StringVar(&opts.editor, "editor", "", "editor name inside the configuration file")
	flag.StringVar(&opts.name, "name", "body", "form field name")
	flag.StringVar(&opts.id, "id", "id_body", "textarea element id")
	flag.StringVar(&opts.input, "input", "", "HTML input file, - for stdin (prompts when empty)")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.hostVersion, "host-version", "", "host framework version used to pick the converter")
	flag.StringVar(&opts.features, "features", "", "comma separated rich-text features")
	flag.StringVar(&opts.language, "lang", "", "editor UI language, e.g. pt-br")
	flag.Parse()

	var out io.Writer = os.Stdout
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer file.Close()
		out = file
	}

	if err := run(opts, os.Stdin, out, surveyPrompt); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			os.Exit(130)
		}
		log.Fatalf("tinymce-cli: %v", err)
	}
	if opts.output != "" {
		fmt.Printf("Output written to %s\n", opts.output)
	}
}

func run(opts options, stdin io.Reader, out io.Writer, prompt promptFunc) error {
	widget, err := buildWidget(opts)
	if err != nil {
		return err
	}

	switch opts.mode {
	case modeInit:
		script, err := widget.RenderJSInit(opts.id, opts.name, "")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, script)
		return err
	case modeRender:
		value, err := readInput(opts.input, stdin, prompt, "Stored HTML to render")
		if err != nil {
			return err
		}
		markup, err := widget.RenderWithScript(opts.name, value, map[string]string{"id": opts.id})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, markup)
		return err
	case modeClean:
		value, err := readInput(opts.input, stdin, prompt, "Editor HTML to clean")
		if err != nil {
			return err
		}
		cleaned, _, err := widget.ValueFromForm(map[string][]string{opts.name: {value}}, nil, opts.name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, cleaned)
		return err
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func buildWidget(opts options) (*widgets.RichTextArea, error) {
	var widgetOptions []widgets.Option
	if opts.configPath != "" {
		doc, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg, err := doc.Editor(opts.editor)
		if err != nil {
			return nil, err
		}
		widgetOptions = append(widgetOptions, cfg.WidgetOptions()...)
	}
	if opts.hostVersion != "" {
		widgetOptions = append(widgetOptions, widgets.WithHostVersion(opts.hostVersion))
	}
	if opts.features != "" {
		widgetOptions = append(widgetOptions, widgets.WithFeatureSet(richtext.ParseFeatures(strings.Split(opts.features, ","))))
	}
	if opts.language != "" {
		widgetOptions = append(widgetOptions, widgets.WithLocaleProvider(locale.Static(opts.language)))
	}
	return widgets.NewRichTextArea(widgetOptions...), nil
}

func readInput(path string, stdin io.Reader, prompt promptFunc, message string) (string, error) {
	switch path {
	case "":
		if prompt == nil {
			return "", errors.New("no input given")
		}
		return prompt(message)
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
}

func surveyPrompt(message string) (string, error) {
	var out string
	prompt := &survey.Multiline{
		Message: message,
		Help:    "Paste HTML, then finish with an empty line.",
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}
