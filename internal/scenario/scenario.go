package scenario

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownScenario はレジストリに存在しないシナリオ名を表す
var ErrUnknownScenario = errors.New("unknown scenario")

// Module はシミュレーションを構成するモジュール
type Module string

const (
	ModuleKernel Module = "KERNEL"
	ModuleMemory Module = "MEMORY"
	ModuleSwamp  Module = "SWAMP"
)

// AllModules は起動順に並べた全モジュール
var AllModules = []Module{ModuleKernel, ModuleMemory, ModuleSwamp}

// Launch はオペレーターが手動で起動すべきプロセス
type Launch struct {
	Modules  []Module // 起動するモジュール
	Clients  []string // 実行するカルピンチョ
	AttachTo Module   // カルピンチョの接続先
}

// Definition はシナリオ名に紐づく準備内容
type Definition struct {
	Name         string
	ConfigPreset string // 空ならコンフィグをコピーしない
	Launch       Launch
}

// HasPreset はコンフィグのステージングが必要かどうかを返す
func (d Definition) HasPreset() bool {
	return d.ConfigPreset != ""
}

// Instructions はオペレーター向けの実行手順を返す
func (d Definition) Instructions() []string {
	lines := make([]string, 0, 2)
	lines = append(lines, modulesLine(d.Launch.Modules))
	if len(d.Launch.Clients) > 0 {
		lines = append(lines, clientsLine(d.Launch.Clients, d.Launch.AttachTo))
	}
	return lines
}

func modulesLine(modules []Module) string {
	if len(modules) == len(AllModules) {
		return fmt.Sprintf("All %d modules must be running.", len(modules))
	}
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = string(m)
	}
	return fmt.Sprintf("ONLY the %s modules must be running.", joinAnd(names))
}

func clientsLine(clients []string, attachTo Module) string {
	quoted := make([]string, len(clients))
	for i, c := range clients {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	noun := "carpincho"
	if len(clients) > 1 {
		noun = "carpinchos"
	}
	return fmt.Sprintf("Run %s %s attached to %s.", noun, joinAnd(quoted), attachTo)
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// Rule は部分一致でシナリオを束ねる例外ルール。
// 完全一致の検索より先に評価される。
type Rule struct {
	Substring  string
	Definition Definition
}

// Matches は name がルールに該当するかを返す
func (r Rule) Matches(name string) bool {
	return r.Substring != "" && strings.Contains(name, r.Substring)
}

// Registry はシナリオ名から定義への不変なテーブル
type Registry struct {
	order []string
	exact map[string]Definition
	rules []Rule
}

// NewRegistry は宣言順を保ったレジストリを作成する
func NewRegistry(defs []Definition, rules ...Rule) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(defs)),
		exact: make(map[string]Definition, len(defs)),
		rules: append([]Rule(nil), rules...),
	}
	for _, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			return nil, errors.New("scenario name is required")
		}
		if _, dup := r.exact[d.Name]; dup {
			return nil, errors.Errorf("duplicate scenario: %s", d.Name)
		}
		r.exact[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	for _, rule := range r.rules {
		if rule.Substring == "" {
			return nil, errors.New("rule substring is required")
		}
	}
	return r, nil
}

// Lookup は name に対応する定義を返す。
// ルールに該当した場合は要求された名前を Name に設定する。
func (r *Registry) Lookup(name string) (Definition, bool) {
	for _, rule := range r.rules {
		if rule.Matches(name) {
			d := rule.Definition
			d.Name = name
			return d, true
		}
	}
	return r.Get(name)
}

// Resolve は Lookup と同じだが、見つからない場合は ErrUnknownScenario を返す
func (r *Registry) Resolve(name string) (Definition, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return Definition{}, errors.Wrapf(ErrUnknownScenario, "%q", name)
	}
	return d, nil
}

// Get は完全一致のみで定義を返す
func (r *Registry) Get(name string) (Definition, bool) {
	d, ok := r.exact[name]
	return d, ok
}

// Names は宣言順のシナリオ名を返す
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len は登録されているシナリオ数を返す
func (r *Registry) Len() int {
	return len(r.order)
}
