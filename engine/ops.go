package engine

import (
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/primitive"
	"github.com/willief/AntTP-tutorial/storage"
)

// Chunks

func (e *Engine) PutChunk(intent model.Intent, content string) (model.Receipt, error) {
	return e.write("chunk.put", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Chunks{Store: s}.PutBase64(content)
	})
}

func (e *Engine) GetChunk(intent model.Intent, addr model.Address) (string, error) {
	return read(e, "chunk.get", intent, func(s *storage.Keyed) (string, error) {
		return primitive.Chunks{Store: s}.GetBase64(addr)
	})
}

func (e *Engine) PutChunkBinary(intent model.Intent, content []byte) (model.Receipt, error) {
	return e.write("chunk.put_binary", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Chunks{Store: s}.Put(content)
	})
}

func (e *Engine) GetChunkBinary(intent model.Intent, addr model.Address) ([]byte, error) {
	return read(e, "chunk.get_binary", intent, func(s *storage.Keyed) ([]byte, error) {
		return primitive.Chunks{Store: s}.Get(addr)
	})
}

// Public data

func (e *Engine) PutPublicData(intent model.Intent, content []byte) (model.Receipt, error) {
	return e.write("public_data.put", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Chunks{Store: s}.Put(content)
	})
}

func (e *Engine) GetPublicData(intent model.Intent, addr model.Address) ([]byte, error) {
	return read(e, "public_data.get", intent, func(s *storage.Keyed) ([]byte, error) {
		return primitive.Chunks{Store: s}.Get(addr)
	})
}

// Registers

func (e *Engine) registers(s *storage.Keyed) primitive.Registers {
	return primitive.Registers{Store: s, Now: e.now}
}

func (e *Engine) CreateRegister(intent model.Intent, name, content string) (model.Receipt, error) {
	return e.write("register.create", intent, func(s *storage.Keyed) (model.Address, error) {
		return e.registers(s).Create(name, content)
	})
}

func (e *Engine) UpdateRegister(intent model.Intent, addr model.Address, name, content string) (model.Receipt, error) {
	return e.write("register.update", intent, func(s *storage.Keyed) (model.Address, error) {
		return addr, e.registers(s).Update(addr, name, content)
	})
}

func (e *Engine) GetRegister(intent model.Intent, addr model.Address) (string, error) {
	return read(e, "register.get", intent, func(s *storage.Keyed) (string, error) {
		return e.registers(s).Get(addr)
	})
}

func (e *Engine) RegisterHistory(intent model.Intent, addr model.Address) ([]model.RegisterEntry, error) {
	return read(e, "register.history", intent, func(s *storage.Keyed) ([]model.RegisterEntry, error) {
		return e.registers(s).History(addr)
	})
}

// Pointers

func (e *Engine) pointers(s *storage.Keyed) primitive.Pointers {
	return primitive.Pointers{Store: s, Signer: e.signer}
}

func (e *Engine) CreatePointer(intent model.Intent, name, target, owner string) (model.Receipt, error) {
	return e.write("pointer.create", intent, func(s *storage.Keyed) (model.Address, error) {
		return e.pointers(s).Create(name, target, owner)
	})
}

func (e *Engine) UpdatePointer(intent model.Intent, addr model.Address, name, target string) (model.Receipt, error) {
	return e.write("pointer.update", intent, func(s *storage.Keyed) (model.Address, error) {
		return addr, e.pointers(s).Update(addr, name, target)
	})
}

func (e *Engine) GetPointer(intent model.Intent, addr model.Address) (model.Pointer, error) {
	return read(e, "pointer.get", intent, func(s *storage.Keyed) (model.Pointer, error) {
		return e.pointers(s).Get(addr)
	})
}

// Scratchpads

func (e *Engine) CreatePublicScratchpad(intent model.Intent, name, content string) (model.Receipt, error) {
	return e.write("scratchpad.create_public", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Scratchpads{Store: s}.CreatePublic(name, content)
	})
}

func (e *Engine) UpdatePublicScratchpad(intent model.Intent, addr model.Address, name, content string) (model.Receipt, error) {
	return e.write("scratchpad.update_public", intent, func(s *storage.Keyed) (model.Address, error) {
		return addr, primitive.Scratchpads{Store: s}.UpdatePublic(addr, name, content)
	})
}

func (e *Engine) GetPublicScratchpad(intent model.Intent, addr model.Address) (string, error) {
	return read(e, "scratchpad.get_public", intent, func(s *storage.Keyed) (string, error) {
		return primitive.Scratchpads{Store: s}.GetPublic(addr)
	})
}

func (e *Engine) CreatePrivateScratchpad(intent model.Intent, name, content string) (model.Receipt, error) {
	return e.write("scratchpad.create_private", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Scratchpads{Store: s}.CreatePrivate(name, content)
	})
}

func (e *Engine) UpdatePrivateScratchpad(intent model.Intent, addr model.Address, name, content string) (model.Receipt, error) {
	return e.write("scratchpad.update_private", intent, func(s *storage.Keyed) (model.Address, error) {
		return addr, primitive.Scratchpads{Store: s}.UpdatePrivate(addr, name, content)
	})
}

func (e *Engine) GetPrivateScratchpad(intent model.Intent, addr model.Address, name string) (string, error) {
	return read(e, "scratchpad.get_private", intent, func(s *storage.Keyed) (string, error) {
		return primitive.Scratchpads{Store: s}.GetPrivate(addr, name)
	})
}

// Archives

func (e *Engine) CreateArchive(intent model.Intent, files []model.ArchiveFile, metadata map[string]string) (model.Receipt, error) {
	return e.write("archive.create", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Archives{Store: s}.Create(files, metadata)
	})
}

func (e *Engine) GetArchive(intent model.Intent, addr model.Address) (model.Archive, error) {
	return read(e, "archive.get", intent, func(s *storage.Keyed) (model.Archive, error) {
		return primitive.Archives{Store: s}.Get(addr)
	})
}

func (e *Engine) GetArchiveFile(intent model.Intent, addr model.Address, path string) (model.ArchiveFile, error) {
	return read(e, "archive.get_file", intent, func(s *storage.Keyed) (model.ArchiveFile, error) {
		return primitive.Archives{Store: s}.GetFile(addr, path)
	})
}

func (e *Engine) CreateTarchive(intent model.Intent, files []model.ArchiveFile) (model.Receipt, error) {
	return e.write("tarchive.create", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Archives{Store: s}.CreateTar(files)
	})
}

// ImportTarchive stores the regular files of a TAR stream as a tarchive.
func (e *Engine) ImportTarchive(intent model.Intent, raw []byte) (model.Receipt, error) {
	return e.write("tarchive.import", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.Archives{Store: s}.ImportTar(raw)
	})
}

func (e *Engine) GetTarchive(intent model.Intent, addr model.Address) ([]model.ArchiveFile, error) {
	return read(e, "tarchive.get", intent, func(s *storage.Keyed) ([]model.ArchiveFile, error) {
		return primitive.Archives{Store: s}.GetTar(addr)
	})
}

// Graph entries

func (e *Engine) CreateGraphEntry(intent model.Intent, name, content string) (model.Receipt, error) {
	return e.write("graph_entry.create", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.GraphEntries{Store: s}.Create(name, content)
	})
}

func (e *Engine) GetGraphEntry(intent model.Intent, addr model.Address) (model.GraphEntry, error) {
	return read(e, "graph_entry.get", intent, func(s *storage.Keyed) (model.GraphEntry, error) {
		return primitive.GraphEntries{Store: s}.Get(addr)
	})
}

// Name registry

func (e *Engine) CreatePNR(intent model.Intent, name string, records model.PNRRecords) (model.Receipt, error) {
	return e.write("pnr.create", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.NameRegistry{Store: s}.Create(name, records)
	})
}

func (e *Engine) UpdatePNR(intent model.Intent, name string, records model.PNRRecords) (model.Receipt, error) {
	return e.write("pnr.update", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.NameRegistry{Store: s}.Update(name, records)
	})
}

func (e *Engine) AppendPNR(intent model.Intent, name string, records model.PNRRecords) (model.Receipt, error) {
	return e.write("pnr.append", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.NameRegistry{Store: s}.Append(name, records)
	})
}

func (e *Engine) GetPNR(intent model.Intent, name string) (model.PNRRecords, error) {
	return read(e, "pnr.get", intent, func(s *storage.Keyed) (model.PNRRecords, error) {
		return primitive.NameRegistry{Store: s}.Get(name)
	})
}

// Key-value

func (e *Engine) PutKeyValue(intent model.Intent, bucket, object, content string) (model.Receipt, error) {
	return e.write("key_value.put", intent, func(s *storage.Keyed) (model.Address, error) {
		return primitive.KeyValues{Store: s}.Put(bucket, object, content)
	})
}

func (e *Engine) GetKeyValue(intent model.Intent, bucket, object string) (string, error) {
	return read(e, "key_value.get", intent, func(s *storage.Keyed) (string, error) {
		return primitive.KeyValues{Store: s}.Get(bucket, object)
	})
}
