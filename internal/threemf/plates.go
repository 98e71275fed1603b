package threemf

import (
	"encoding/xml"
	"sort"
	"strconv"

	"github.com/philipparndt/plate3mf/internal/models"
)

// parsePlateDefs parses the slicer's plate document into plate definitions.
// Malformed input degrades to no definitions; the caller falls back to
// single-plate mode.
func parsePlateDefs(text string) []PlateDef {
	var config models.SlicerConfig
	if err := xml.Unmarshal([]byte(text), &config); err != nil {
		return nil
	}

	defs := make([]PlateDef, 0, len(config.Plates))
	for pos, plate := range config.Plates {
		def := PlateDef{
			Index:    pos + 1,
			Metadata: metadataMap(plate.Metadata),
		}
		if idx, ok := plateIndex(def.Metadata); ok {
			def.Index = idx
		}

		for _, inst := range plate.Instances {
			meta := metadataMap(inst.Metadata)
			objectID, err := strconv.Atoi(meta["object_id"])
			if err != nil {
				continue
			}
			instanceID, err := strconv.Atoi(meta["instance_id"])
			if err != nil {
				instanceID = 0
			}
			def.Instances = append(def.Instances, InstanceRef{
				ObjectID:   objectID,
				InstanceID: instanceID,
			})
		}

		defs = append(defs, def)
	}

	return defs
}

// parseSliceInfo parses the slicer's per-plate filament and timing document
func parseSliceInfo(text string) []SliceInfo {
	var config models.SlicerConfig
	if err := xml.Unmarshal([]byte(text), &config); err != nil {
		return nil
	}

	infos := make([]SliceInfo, 0, len(config.Plates))
	for pos, plate := range config.Plates {
		info := SliceInfo{
			Index:    pos + 1,
			Metadata: metadataMap(plate.Metadata),
		}
		if idx, ok := plateIndex(info.Metadata); ok {
			info.Index = idx
		}

		for _, fil := range plate.Filaments {
			entry := map[string]string{}
			for k, v := range map[string]string{
				"id":     fil.ID,
				"type":   fil.Type,
				"color":  fil.Color,
				"used_m": fil.UsedM,
				"used_g": fil.UsedG,
			} {
				if v != "" {
					entry[k] = v
				}
			}
			info.Filaments = append(info.Filaments, entry)
		}

		infos = append(infos, info)
	}

	return infos
}

// resolvePlates maps plate definitions onto concrete build items. Without
// definitions the whole build becomes a single plate with index 1.
func resolvePlates(items []BuildItem, defs []PlateDef) []Plate {
	if len(defs) == 0 {
		return []Plate{newPlate(1, map[string]string{}, items)}
	}

	// Build items per object id, in document appearance order. The
	// instance id in a plate definition indexes into this list.
	byObject := make(map[int][]BuildItem)
	for _, item := range items {
		byObject[item.ObjectID] = append(byObject[item.ObjectID], item)
	}

	plates := make([]Plate, 0, len(defs))
	for _, def := range defs {
		seen := make(map[int]bool)
		var selected []BuildItem

		for _, ref := range def.Instances {
			instances := byObject[ref.ObjectID]
			if len(instances) == 0 {
				continue
			}

			item, ok := pickInstance(instances, ref.InstanceID)
			if !ok {
				continue
			}
			if seen[item.Seq] {
				continue
			}
			seen[item.Seq] = true
			selected = append(selected, item)
		}

		plates = append(plates, newPlate(def.Index, def.Metadata, selected))
	}

	sort.Slice(plates, func(i, j int) bool {
		return plates[i].Index < plates[j].Index
	})

	return plates
}

// pickInstance selects a build item for an instance reference. Slicer
// vendors disagree about the numbering base, so the id is tried 0-based
// first, then 1-based, then the first instance of the object is used.
func pickInstance(instances []BuildItem, instanceID int) (BuildItem, bool) {
	if instanceID >= 0 && instanceID < len(instances) {
		return instances[instanceID], true
	}
	if instanceID-1 >= 0 && instanceID-1 < len(instances) {
		return instances[instanceID-1], true
	}
	return instances[0], true
}

// mergeSliceInfo attaches slice info entries to plates by matching index
func mergeSliceInfo(plates []Plate, infos []SliceInfo) {
	byIndex := make(map[int]SliceInfo, len(infos))
	for _, info := range infos {
		byIndex[info.Index] = info
	}

	for i := range plates {
		info, ok := byIndex[plates[i].Index]
		if !ok {
			continue
		}
		if info.Metadata != nil {
			plates[i].SliceInfo = info.Metadata
		}
		if info.Filaments != nil {
			plates[i].Filaments = info.Filaments
		}
	}
}

func newPlate(index int, metadata map[string]string, items []BuildItem) Plate {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return Plate{
		Index:     index,
		Metadata:  metadata,
		SliceInfo: map[string]string{},
		Filaments: []map[string]string{},
		Items:     items,
	}
}

// metadataMap flattens key/value metadata elements into a string map
func metadataMap(meta []models.ConfigMetadata) map[string]string {
	m := make(map[string]string, len(meta))
	for _, entry := range meta {
		if entry.Key != "" {
			m[entry.Key] = entry.Value
		}
	}
	return m
}

// plateIndex extracts the plate index from plate metadata; both the Bambu
// plater_id key and the slice info index key appear in the wild
func plateIndex(meta map[string]string) (int, bool) {
	for _, key := range []string{"plater_id", "index"} {
		if v, ok := meta[key]; ok {
			if idx, err := strconv.Atoi(v); err == nil {
				return idx, true
			}
		}
	}
	return 0, false
}
