package main

import (
	"os"
	"strings"

	"prepare-test/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// pickScenario はシナリオを対話的に選択させる。
// 端末でない場合や中断された場合は false を返し、通常のフォールバックに任せる。
func pickScenario(names []string) (string, bool) {
	if !stdinIsTerminal() {
		logger.Warn("", "--interactive ignored: stdin is not a terminal")
		return "", false
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | cyan }}",
		Selected: "{{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     "Choose a scenario",
		Items:     names,
		Templates: templates,
		Size:      len(names),
		Searcher:  scenarioSearcher(names),
	}

	_, name, err := prompt.Run()
	if err != nil {
		if err != promptui.ErrInterrupt {
			logger.Warn("", "scenario selection failed: %v", err)
		}
		return "", false
	}
	return name, true
}

func scenarioSearcher(names []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		name := strings.ToLower(names[index])
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}
}
