package scenario

// プリセット名 (cfg/<preset>.config)
const (
	PresetBattle            = "battlePreset"
	PresetMemoryAllocation  = "memoryAllocation"
	PresetGreeting          = "greetingScenario"
	PresetMemoryReplacement = "memoryReplacementMMU"
	PresetKernelScheduling  = "kernelScheduling"
	PresetKernelSuspension  = "kernelSuspension"
	PresetSwampTest         = "swampTestPreset"
	PresetMemoryTLB         = "memoryTLB"
)

// AllocationSubstring を含む名前はすべて割り当てテストとして扱う
const AllocationSubstring = "allocation"

func attachedToKernel(clients ...string) Launch {
	return Launch{
		Modules:  AllModules,
		Clients:  clients,
		AttachTo: ModuleKernel,
	}
}

// AllocationRule は割り当てテスト群の部分一致ルールを返す
func AllocationRule() Rule {
	return Rule{
		Substring: AllocationSubstring,
		Definition: Definition{
			Name:         AllocationSubstring,
			ConfigPreset: PresetMemoryAllocation,
			Launch:       attachedToKernel("PruebaAsignacion"),
		},
	}
}

// BuiltinDefinitions は組み込みシナリオを宣言順に返す
func BuiltinDefinitions() []Definition {
	allocation := AllocationRule().Definition
	allocationFixed := allocation
	allocationFixed.Name = "allocationFixed"
	allocationDynamic := allocation
	allocationDynamic.Name = "allocationDynamic"

	return []Definition{
		{Name: "battlePreset", ConfigPreset: PresetBattle, Launch: attachedToKernel("BatallaPorNordelta")},
		allocationFixed,
		allocationDynamic,
		{Name: "greetingScenario", ConfigPreset: PresetGreeting, Launch: attachedToKernel("PruebaBase_Carpincho1", "PruebaBase_Carpincho2")},
		{Name: "deadlockScenario", Launch: attachedToKernel("PruebaDeadlock")},
		{Name: "mmuClock", ConfigPreset: PresetMemoryReplacement, Launch: attachedToKernel("PruebaMMU")},
		{Name: "mmuLRU", ConfigPreset: PresetMemoryReplacement, Launch: attachedToKernel("PruebaAsignacion")},
		{Name: "schedulingSJF", ConfigPreset: PresetKernelScheduling, Launch: attachedToKernel("PruebaPlanificacion")},
		{Name: "schedulingHRRN", ConfigPreset: PresetKernelScheduling, Launch: attachedToKernel("PruebaPlanificacion")},
		{Name: "suspension", ConfigPreset: PresetKernelSuspension, Launch: attachedToKernel("PruebaSuspension")},
		{
			Name:         "swampSelf",
			ConfigPreset: PresetSwampTest,
			Launch: Launch{
				Modules:  []Module{ModuleMemory, ModuleSwamp},
				Clients:  []string{"prueba_swamp"},
				AttachTo: ModuleMemory,
			},
		},
		{Name: "tlbFIFO", ConfigPreset: PresetMemoryTLB, Launch: attachedToKernel("prueba_tlb_fifo")},
		{Name: "tlbLRU", ConfigPreset: PresetMemoryTLB, Launch: attachedToKernel("prueba_tlb_lru")},
	}
}

var builtin = mustBuiltin()

func mustBuiltin() *Registry {
	r, err := NewRegistry(BuiltinDefinitions(), AllocationRule())
	if err != nil {
		panic(err)
	}
	return r
}

// Builtin は組み込みレジストリを返す
func Builtin() *Registry {
	return builtin
}

// GetPreset は名前から組み込みシナリオを取得する
func GetPreset(name string) (Definition, bool) {
	return builtin.Lookup(name)
}

// ListPresets は利用可能なシナリオ名を宣言順に返す
func ListPresets() []string {
	return builtin.Names()
}
