package descriptor

// Operation bodies for the shared factory. Each body runs inside
// useFirestoreCollectionActions(collectionName, state), which provides
// colRef, slice(), buildQuery(cursor), run(operation), toDoc(snapshot),
// PAGE_SIZE and the sibling operations.

const fetchInitialPageImpl = `
return run(async () => {
  const snapshot = await getDocs(buildQuery())
  const current = slice()
  current.items = snapshot.docs.map(toDoc)
  current.lastVisible = snapshot.docs[snapshot.docs.length - 1] || null
  current.hasMore = snapshot.docs.length === PAGE_SIZE
  return current.items
})
`

const fetchNextPageImpl = `
const current = slice()
if (!current.hasMore || !current.lastVisible) {
  return []
}
return run(async () => {
  const snapshot = await getDocs(buildQuery(current.lastVisible))
  const page = snapshot.docs.map(toDoc)
  current.items.push(...page)
  current.lastVisible = snapshot.docs[snapshot.docs.length - 1] || current.lastVisible
  current.hasMore = snapshot.docs.length === PAGE_SIZE
  return page
})
`

const applyFiltersImpl = `
slice().filters = { ...filters }
return fetchInitialPage()
`

const changeSortImpl = `
slice().sort = { field, direction }
return fetchInitialPage()
`

const addImpl = `
return run(async () => {
  const ref = await addDoc(colRef, {
    ...data,
    createdAt: serverTimestamp(),
    updatedAt: serverTimestamp(),
  })
  const created = { id: ref.id, ...data }
  slice().items.unshift(created)
  return created
})
`

const getByIdImpl = `
return run(async () => {
  const snapshot = await getDoc(doc(db, collectionName, id))
  return snapshot.exists() ? toDoc(snapshot) : null
})
`

const getWhereImpl = `
return run(async () => {
  const snapshot = await getDocs(query(colRef, where(field, operator, value)))
  return snapshot.docs.map(toDoc)
})
`

const updateImpl = `
return run(async () => {
  await updateDoc(doc(db, collectionName, id), { ...data, updatedAt: serverTimestamp() })
  const current = slice()
  const index = current.items.findIndex((item) => item.id === id)
  if (index !== -1) {
    current.items[index] = { ...current.items[index], ...data }
  }
  return { id, ...data }
})
`

const searchImpl = `
const current = slice()
current.searchTerm = term
if (!term) {
  current.searchResults = []
  return []
}
return run(async () => {
  const snapshot = await getDocs(
    query(colRef, where(field, '>=', term), where(field, '<=', term + '\uf8ff'), limit(PAGE_SIZE)),
  )
  current.searchResults = snapshot.docs.map(toDoc)
  return current.searchResults
})
`

const clearSearchImpl = `
const current = slice()
current.searchTerm = ''
current.searchResults = []
`

const removeImpl = `
{{- if .RoleCheck }}
if (!state.currentUser?.roles?.includes({{ jsString .AdminRole }})) {
  const error = new Error({{ printf "Only %s users can delete documents." .AdminRole | jsString }})
  state.error = error.message
  throw error
}
{{- end }}
return run(async () => {
  await deleteDoc(doc(db, collectionName, id))
  const current = slice()
  current.items = current.items.filter((item) => item.id !== id)
  return id
})
`

const assignRolesImpl = `
return run(async () => {
  await updateDoc(doc(db, collectionName, id), {
    roles: arrayUnion(...roles),
    updatedAt: serverTimestamp(),
  })
  return { id, roles }
})
`

const revokeRolesImpl = `
return run(async () => {
  await updateDoc(doc(db, collectionName, id), {
    roles: arrayRemove(...roles),
    updatedAt: serverTimestamp(),
  })
  return { id, roles }
})
`
