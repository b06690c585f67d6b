// Package authflow describes the authentication flows emitted into a store's
// index module: the flows, the failure-code table and the constants the
// session-restore and actor helpers are built from.
//
// The flows are data: a name, parameters, documentation and the JavaScript
// statements that run inside the shared loading/error envelope. The envelope
// itself (loading on entry, error cleared, failures classified, loading
// cleared in finally) is applied by the index composer so every flow gets
// identical semantics.
//
// All flows share the store's loading, error and currentUser fields. Only one
// flow is expected in flight at a time; overlapping flows race on those
// fields and the last one to finish wins. This is a documented constraint on
// callers, not something the generated code guards against.
package authflow

import "sort"

// Flow is one authentication operation in the generated index module.
type Flow struct {
	Name   string
	Params []string
	Doc    []string

	// Body is the JavaScript run inside the try block. It may reference
	// state, auth, db, mergeProfile, requireUser, PRIMARY_AUTH_COLLECTION
	// and PrimaryActions (the primary auth collection's action set binding).
	Body string
}

// Failure maps a known failure code to a human readable message.
type Failure struct {
	Code    string
	Message string
}

// NoCurrentUserCode is raised by flows that need a signed-in user.
const NoCurrentUserCode = "auth/no-current-user"

// FallbackMessage is used by toAuthError when neither the code table nor the
// cause carries a message.
const FallbackMessage = "An unexpected error occurred. Please try again."

// Failures is the known failure table, in emission order.
var Failures = []Failure{
	{"auth/user-not-found", "No account found with this email address."},
	{"auth/wrong-password", "Incorrect password. Please try again."},
	{"auth/invalid-credential", "Invalid email or password."},
	{"auth/email-already-in-use", "An account with this email address already exists."},
	{"auth/weak-password", "Password should be at least 6 characters."},
	{"auth/invalid-email", "Please enter a valid email address."},
	{"auth/user-disabled", "This account has been disabled."},
	{"auth/too-many-requests", "Too many attempts. Please wait a moment and try again."},
	{"auth/network-request-failed", "Network error. Check your connection and try again."},
	{"auth/requires-recent-login", "Please sign in again to complete this action."},
	{NoCurrentUserCode, "You need to be signed in to do that."},
}

// Messages returns the failure table with overrides applied. Overrides for
// unknown codes are appended in sorted order after the built-in codes.
func Messages(overrides map[string]string) []Failure {
	out := make([]Failure, 0, len(Failures)+len(overrides))
	seen := make(map[string]bool, len(Failures))
	for _, f := range Failures {
		if msg, ok := overrides[f.Code]; ok && msg != "" {
			f.Message = msg
		}
		out = append(out, f)
		seen[f.Code] = true
	}

	for _, code := range sortedKeys(overrides) {
		if seen[code] || overrides[code] == "" {
			continue
		}
		out = append(out, Failure{Code: code, Message: overrides[code]})
	}
	return out
}

// Flows is the ordered list of envelope-wrapped flows. Session restore is
// not listed here; it has its own state machine (see SessionState).
var Flows = []Flow{
	{
		Name:   "login",
		Params: []string{"email", "password"},
		Doc:    []string{"Sign in with email and password and load the user's profile."},
		Body: `
const credential = await signInWithEmailAndPassword(auth, email, password)
await mergeProfile(credential.user)
return state.currentUser
`,
	},
	{
		Name:   "signUp",
		Params: []string{"email", "password", "profile = {}"},
		Doc:    []string{"Create an account, its profile document, and send a verification email."},
		Body: `
const credential = await createUserWithEmailAndPassword(auth, email, password)
if (profile.displayName) {
  await updateAuthProfile(credential.user, { displayName: profile.displayName })
}
await setDoc(doc(db, PRIMARY_AUTH_COLLECTION, credential.user.uid), {
  ...profile,
  email,
  roles: [],
  createdAt: serverTimestamp(),
  updatedAt: serverTimestamp(),
})
await sendEmailVerification(credential.user)
await mergeProfile(credential.user)
return state.currentUser
`,
	},
	{
		Name: "logout",
		Doc:  []string{"Sign out and clear the current user."},
		Body: `
await signOut(auth)
state.currentUser = null
`,
	},
	{
		Name:   "resetPassword",
		Params: []string{"email"},
		Doc:    []string{"Send a password reset email."},
		Body: `
await sendPasswordResetEmail(auth, email)
`,
	},
	{
		Name:   "updateUserProfile",
		Params: []string{"updates"},
		Doc:    []string{"Update the signed-in user's auth profile and profile document."},
		Body: `
const user = requireUser()
const { displayName, photoURL } = updates
if (displayName !== undefined || photoURL !== undefined) {
  await updateAuthProfile(user, { displayName, photoURL })
}
await {{ .PrimaryActions }}.{{ .PrimaryUpdate }}(user.uid, updates)
state.currentUser = { ...state.currentUser, ...updates }
return state.currentUser
`,
	},
	{
		Name:   "changePassword",
		Params: []string{"currentPassword", "newPassword"},
		Doc:    []string{"Re-authenticate with the current password, then set a new one."},
		Body: `
const user = requireUser()
const credential = EmailAuthProvider.credential(user.email, currentPassword)
await reauthenticateWithCredential(user, credential)
await updatePassword(user, newPassword)
`,
	},
	{
		Name: "resendVerificationEmail",
		Doc:  []string{"Send the email verification message again."},
		Body: `
await sendEmailVerification(requireUser())
`,
	},
}

// BodyData is the template data for Flow.Body.
type BodyData struct {
	PrimaryActions string
	PrimaryUpdate  string
}

// AuthImports are the firebase/auth names the flows reference.
var AuthImports = []string{
	"signInWithEmailAndPassword",
	"createUserWithEmailAndPassword",
	"signOut",
	"sendPasswordResetEmail",
	"sendEmailVerification",
	"updateProfile as updateAuthProfile",
	"updatePassword",
	"reauthenticateWithCredential",
	"EmailAuthProvider",
	"onAuthStateChanged",
}

// FirestoreImports are the firebase/firestore names the flows reference.
var FirestoreImports = []string{"doc", "getDoc", "setDoc", "serverTimestamp"}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
