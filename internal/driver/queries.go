package driver

const (
	SaveEntityNodeQuery = `
		MERGE (n:Entity {name: $name, group_id: $group_id})
		ON CREATE SET n.uuid = $uuid, n.created_at = $created_at
		SET n.entity_type = $entity_type,
			n.name_embedding = $name_embedding,
			n.summary = $summary
		RETURN n.uuid AS uuid
	`

	SaveAttributeNodeQuery = `
		MATCH (n:Entity {uuid: $entity_uuid})
		MERGE (a:Attribute {uuid: $uuid})
		SET a.attribute_type = $attribute_type,
			a.value = $value,
			a.group_id = $group_id,
			a.chapter_id = $chapter_id,
			a.sentence_idx = $sentence_idx,
			a.confidence = $confidence,
			a.conflict_status = $conflict_status,
			a.assignment_source = $assignment_source,
			a.is_dubious = $is_dubious,
			a.text_evidence = $text_evidence,
			a.resolution_notes = $resolution_notes,
			a.created_at = $created_at
		MERGE (a)-[:DESCRIBES]->(n)
		RETURN a.uuid AS uuid
	`

	SaveInconsistencyNodeQuery = `
		MATCH (n:Entity {uuid: $entity_uuid})
		MERGE (i:Inconsistency {uuid: $uuid})
		SET i.attribute_key = $attribute_key,
			i.inconsistency_type = $inconsistency_type,
			i.value1 = $value1,
			i.chapter1 = $chapter1,
			i.value2 = $value2,
			i.chapter2 = $chapter2,
			i.confidence = $confidence,
			i.explanation = $explanation,
			i.group_id = $group_id,
			i.created_at = $created_at
		MERGE (i)-[:FLAGS]->(n)
		RETURN i.uuid AS uuid
	`

	GetEntityByNameQuery = `
		MATCH (n:Entity {name: $name, group_id: $group_id})
		RETURN n.uuid AS uuid, n.name AS name, n.entity_type AS entity_type
	`

	GetGroupEntitiesQuery = `
		MATCH (n:Entity {group_id: $group_id})
		RETURN n.uuid AS uuid, n.name AS name, n.entity_type AS entity_type
	`

	GetEntityAttributesQuery = `
		MATCH (a:Attribute)-[:DESCRIBES]->(n:Entity {uuid: $entity_uuid})
		RETURN a.uuid AS uuid, a.attribute_type AS attribute_type, a.value AS value,
			a.chapter_id AS chapter_id, a.confidence AS confidence,
			a.conflict_status AS conflict_status, a.is_dubious AS is_dubious
		ORDER BY a.chapter_id, a.sentence_idx
	`

	GetGroupInconsistenciesQuery = `
		MATCH (i:Inconsistency {group_id: $group_id})-[:FLAGS]->(n:Entity)
		RETURN i.uuid AS uuid, n.name AS entity_name, i.attribute_key AS attribute_key,
			i.inconsistency_type AS inconsistency_type, i.value1 AS value1,
			i.value2 AS value2, i.confidence AS confidence, i.explanation AS explanation
		ORDER BY i.confidence DESC
	`
)
