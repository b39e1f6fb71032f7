// Package alts redirects stage asset loads to alternate versions of a stage.
//
// An alternate of stage form "stage/<name>/normal" is any sibling folder named
// "normal_sNN" (or "battle_sNN" for the battle form) holding files at the
// same relative paths. When the host loads a form directory, the manager
// first restores the whole record to its original data, then points every
// file and search entry of the loaded form at the alternate that the active
// selection picked.
//
// # Components
//
//   - BuildCatalog discovers the alternates of every record by folder name.
//   - Engine patches and restores the Directory Table and the Search Index,
//     reporting failures per file instead of aborting.
//   - SortFolderContents brings every folder's child chain into a canonical
//     order so listings do not depend on hash order.
//   - Manager holds the catalog, the backups, the rotation of one to three
//     selections and the event hooks the host calls.
//   - Service and Handler expose the manager over HTTP.
//
// # Events
//
//	mgr.Initialize(arc)                 // once, after the archive is loaded
//	mgr.SetSelection(sel1, sel2)        // from the stage select screen
//	mgr.OnAssetPrepare()                // before each stage load
//	mgr.OnDirectoryLoad(arc, formPath)  // for each loaded directory
package alts
