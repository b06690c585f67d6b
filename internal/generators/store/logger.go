package store

import (
	"fmt"

	"github.com/simonhull/firebird-suite/plume/internal/authflow"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/jsgen"
)

// ActivityCollection is the Firestore collection activity entries go to.
const ActivityCollection = "activityLogs"

// ComposeLogger composes activityLogger.<ext>. The listener lifecycle is an
// explicit handle: startActivityListener returns it and stopActivityListener
// consumes it, so no module-level subscription state exists.
func ComposeLogger(p *Plan) (string, error) {
	body := []jsgen.Stmt{
		jsgen.Const{Export: true, Name: "ACTIVITY_COLLECTION", Value: jsgen.Str(ActivityCollection)},
		jsgen.Blank{},
		jsgen.Func{
			Doc: []string{
				"Records one activity entry. Entries without an actorType are attributed",
				fmt.Sprintf("to the %q actor. A failed write is logged and never fails the", authflow.SystemActorID),
				"operation that triggered it.",
				"",
				"@param {object} entry action, collection, documentId, details and actor context",
			},
			Export: true,
			Async:  true,
			Name:   "logActivity",
			Params: []string{"entry"},
			Body: []jsgen.Stmt{jsgen.Raw{Text: fmt.Sprintf(`
try {
  await addDoc(collection(db, ACTIVITY_COLLECTION), {
    ...entry,
    actorId: entry.actorId || %[1]s,
    actorType: entry.actorType || %[2]s,
    timestamp: serverTimestamp(),
  })
} catch (error) {
  console.warn('Failed to record activity:', error)
}
`, generator.JSString(authflow.SystemActorID), generator.JSString(authflow.SystemActorType))}},
		},
		jsgen.Blank{},
		jsgen.Func{
			Doc: []string{
				"Fetches the most recent activity entries, newest first.",
				"",
				"@param {number} [max=50]",
			},
			Export: true,
			Async:  true,
			Name:   "fetchRecentActivity",
			Params: []string{"max = 50"},
			Body: []jsgen.Stmt{jsgen.Raw{Text: `
const snapshot = await getDocs(
  query(collection(db, ACTIVITY_COLLECTION), orderBy('timestamp', 'desc'), limit(max)),
)
return snapshot.docs.map((entry) => ({ id: entry.id, ...entry.data() }))
`}},
		},
		jsgen.Blank{},
		jsgen.Func{
			Doc: []string{
				"Starts streaming recent activity to onChange and returns the listener",
				"handle. Pass the handle to stopActivityListener to stop it; several",
				"listeners may run side by side.",
				"",
				"@param {(entries: object[]) => void} onChange",
				"@param {{ max?: number }} [options]",
				"@returns {{ active: boolean, unsubscribe: () => void }}",
			},
			Export: true,
			Name:   "startActivityListener",
			Params: []string{"onChange", "{ max = 50 } = {}"},
			Body: []jsgen.Stmt{jsgen.Raw{Text: `
const handle = { active: true, unsubscribe: () => {} }
const recent = query(collection(db, ACTIVITY_COLLECTION), orderBy('timestamp', 'desc'), limit(max))
handle.unsubscribe = onSnapshot(
  recent,
  (snapshot) => {
    if (handle.active) {
      onChange(snapshot.docs.map((entry) => ({ id: entry.id, ...entry.data() })))
    }
  },
  (error) => console.warn('Activity listener failed:', error),
)
return handle
`}},
		},
		jsgen.Blank{},
		jsgen.Func{
			Doc: []string{
				"Stops the listener behind handle. Stopping a handle twice is a no-op.",
				"",
				"@param {{ active: boolean, unsubscribe: () => void }} handle",
			},
			Export: true,
			Name:   "stopActivityListener",
			Params: []string{"handle"},
			Body: []jsgen.Stmt{jsgen.Raw{Text: `
if (!handle || !handle.active) {
  return
}
handle.active = false
handle.unsubscribe()
`}},
		},
	}

	return jsgen.Print(&jsgen.File{
		Header: []string{fmt.Sprintf("Generated by plume. Activity log for the %s store.", p.Store)},
		Imports: []jsgen.Import{
			{
				Names: []string{"collection", "addDoc", "getDocs", "query", "orderBy", "limit", "onSnapshot", "serverTimestamp"},
				From:  "firebase/firestore",
			},
			{Names: []string{"db"}, From: p.FirebaseImport},
		},
		Body: body,
	}), nil
}
