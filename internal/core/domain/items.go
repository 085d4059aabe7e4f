package domain

import (
	"regexp"
	"sort"
	"strings"
)

const CanonicalTier = "T8"

var (
	tierPrefix     = regexp.MustCompile(`^[T\d]+_`)
	strictTier     = regexp.MustCompile(`^T\d+_`)
	enchantSuffix  = regexp.MustCompile(`@\d+$`)
	itemRenderBase = "https://render.albiononline.com/v1/item/"
)

var tankItems = []string{
	"MAIN_MACE", "2H_DUALMACE_AVALON", "MAIN_MACE_HELL", "2H_ICEGAUNTLETS_HELL",
	"2H_IRONGAUNTLETS_HELL", "2H_HAMMER_AVALON", "MAIN_MACE_CRYSTAL", "2H_MACE_MORGANA",
	"2H_HAMMER_UNDEAD", "MAIN_ROCKMACE_KEEPER", "2H_DUALHAMMER_HELL", "2H_POLEHAMMER",
	"2H_HAMMER", "2H_MACE", "MAIN_HAMMER",
}

var healerSupportItems = []string{
	"2H_HOLYSTAFF", "2H_HOLYSTAFF_UNDEAD", "MAIN_HOLYSTAFF_AVALON", "MAIN_HOLYSTAFF",
	"2H_DIVINESTAFF", "MAIN_HOLYSTAFF_MORGANA", "2H_HOLYSTAFF_CRYSTAL", "2H_HOLYSTAFF_HELL",
	"2H_ARCANESTAFF_HELL", "MAIN_ARCANESTAFF_UNDEAD", "2H_ARCANESTAFF_CRYSTAL",
	"2H_ENIGMATICSTAFF", "2H_ARCANESTAFF", "MAIN_ARCANESTAFF", "2H_ARCANE_RINGPAIR_AVALON",
}

var transportMounts = []string{
	"T2_MOUNT_MULE",
	"T3_MOUNT_OX",
	"T4_MOUNT_OX",
	"T5_MOUNT_OX",
	"T6_MOUNT_OX",
	"T7_MOUNT_OX",
	"T8_MOUNT_OX",
	"T4_MOUNT_GIANTSTAG",
	"T6_MOUNT_GIANTSTAG_MOOSE",
	"T8_MOUNT_MAMMOTH_TRANSPORT",
	"T5_MOUNT_DIREBEAR_FW_FORTSTERLING",
	"T5_MOUNT_DIREBOAR_FW_LYMHURST",
	"T8_MOUNT_DIREBEAR_FW_FORTSTERLING_ELITE",
	"T8_MOUNT_DIREBOAR_FW_LYMHURST_ELITE",
}

// NormalizeItemType forces the tier to T8 and strips the enchantment so that
// every tier of an item shares one aggregation key.
func NormalizeItemType(itemType string) string {
	return enchantSuffix.ReplaceAllString(tierPrefix.ReplaceAllString(itemType, CanonicalTier+"_"), "")
}

// BaseItemName drops both tier prefix and enchantment suffix.
func BaseItemName(itemType string) string {
	return enchantSuffix.ReplaceAllString(strictTier.ReplaceAllString(itemType, ""), "")
}

// ItemVariations lists the tier/enchantment combinations that share the
// same item power band: T8.0, T7.1, T6.2 and T5.3.
func ItemVariations(itemType string) []string {
	base := BaseItemName(itemType)
	return []string{
		"T8_" + base,
		"T7_" + base + "@1",
		"T6_" + base + "@2",
		"T5_" + base + "@3",
	}
}

func ItemImageURL(itemType string) string {
	return itemRenderBase + itemType + ".png"
}

func IsTank(itemType string) bool {
	return containsAny(itemType, tankItems)
}

func IsHealerOrSupport(itemType string) bool {
	return containsAny(itemType, healerSupportItems)
}

func IsHeavyMount(itemType string) bool {
	return containsAny(itemType, transportMounts)
}

func containsAny(s string, needles []string) bool {
	if s == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EquipmentCounts tallies the victims' weapon and armor pieces by normalized
// item type. The result is sorted by name.
func EquipmentCounts(events []KillEvent) []ItemCount {
	counts := make(map[string]int)
	for _, ev := range events {
		for _, it := range ev.Victim.Equipment.GearSlots() {
			counts[NormalizeItemType(it.Type)]++
		}
	}

	result := make([]ItemCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, ItemCount{Name: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
