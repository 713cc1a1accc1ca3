// Package scenario はテストシナリオのレジストリを提供する。
//
// 各シナリオはステージングするコンフィグのプリセット（任意）と、
// オペレーターが手動で起動すべきモジュール・カルピンチョを持つ。
//
// # 照合規則
//
// 名前は完全一致で照合する。唯一の例外は AllocationRule で、
// "allocation" を含む名前はすべて memoryAllocation プリセットに束ねられる。
// ルールは完全一致より先に評価される。
//
// # 組み込みシナリオ
//
//   - battlePreset, allocationFixed, allocationDynamic, greetingScenario
//   - deadlockScenario (プリセットなし)
//   - mmuClock, mmuLRU, schedulingSJF, schedulingHRRN, suspension
//   - swampSelf (MEMORY と SWAMP のみ)
//   - tlbFIFO, tlbLRU
//
// # 使用例
//
//	def, ok := scenario.Builtin().Lookup("tlbLRU")
//	if !ok {
//	    fmt.Println(scenario.ListPresets())
//	}
//	for _, line := range def.Instructions() {
//	    fmt.Println(line)
//	}
package scenario
